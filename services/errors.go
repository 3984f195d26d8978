package services

import "errors"

// Common service-level errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLoginFailed     = errors.New("login failed")
)
