package identity

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// Error codes reported by AuthError
const (
	CodeUserNotFound       = "auth/user-not-found"
	CodeInvalidCredential  = "auth/invalid-credential"
	CodeWrongPassword      = "auth/wrong-password"
	CodeEmailAlreadyInUse  = "auth/email-already-in-use"
	CodeUserDisabled       = "auth/user-disabled"
	CodeTooManyRequests    = "auth/too-many-requests"
	CodeWeakPassword       = "auth/weak-password"
	CodeOperationForbidden = "auth/operation-not-allowed"
	CodeInternal           = "auth/internal-error"
)

// AuthError is an identity backend failure with a stable code
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialNotRecognized reports whether err means the account does not
// exist or the password did not match, so signing up should be tried
func IsCredentialNotRecognized(err error) bool {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return false
	}
	switch authErr.Code {
	case CodeUserNotFound, CodeInvalidCredential, CodeWrongPassword:
		return true
	}
	return false
}

var backendCodes = map[string]string{
	"EMAIL_NOT_FOUND":             CodeUserNotFound,
	"INVALID_PASSWORD":            CodeWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   CodeInvalidCredential,
	"EMAIL_EXISTS":                CodeEmailAlreadyInUse,
	"USER_DISABLED":               CodeUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": CodeTooManyRequests,
	"WEAK_PASSWORD":               CodeWeakPassword,
	"OPERATION_NOT_ALLOWED":       CodeOperationForbidden,
}

// classify converts an Identity Toolkit API error into an *AuthError.
// Errors that are not API errors are returned unchanged.
func classify(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	msg := apiErr.Message
	if msg == "" && len(apiErr.Errors) > 0 {
		msg = apiErr.Errors[0].Message
	}
	// messages look like "WEAK_PASSWORD : Password should be at least 6 characters"
	key := msg
	if i := strings.IndexAny(key, " :"); i >= 0 {
		key = key[:i]
	}

	code, ok := backendCodes[key]
	if !ok {
		code = CodeInternal
	}
	return &AuthError{Code: code, Message: msg, Err: err}
}
