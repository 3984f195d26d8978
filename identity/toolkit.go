package identity

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Toolkit authenticates against the Identity Toolkit REST API with a web API key
type Toolkit struct {
	svc *identitytoolkit.Service
}

func NewToolkit(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Toolkit, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}
	return &Toolkit{svc: svc}, nil
}

func (t *Toolkit) SignIn(ctx context.Context, email, password string) (*Result, error) {
	resp, err := t.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	return &Result{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    time.Duration(resp.ExpiresIn) * time.Second,
	}, nil
}

func (t *Toolkit) SignUp(ctx context.Context, email, password string) (*Result, error) {
	resp, err := t.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	return &Result{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    time.Duration(resp.ExpiresIn) * time.Second,
	}, nil
}
