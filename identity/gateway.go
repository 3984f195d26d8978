// Package identity signs users in with a short id, creating the account on first use.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"study-tracker/models"

	"golang.org/x/oauth2"
)

var ErrEmptyID = errors.New("id must not be empty")

// Result is what the identity backend returns for a successful sign in or sign up
type Result struct {
	UID          string
	Email        string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// Authenticator is the email/password identity backend
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Result, error)
	SignUp(ctx context.Context, email, password string) (*Result, error)
}

// Gateway maps short ids onto email/password accounts
type Gateway struct {
	auth   Authenticator
	domain string
	logger *slog.Logger
	now    func() time.Time
}

func NewGateway(auth Authenticator, domain string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		auth:   auth,
		domain: domain,
		logger: logger.With("component", "identity"),
		now:    time.Now,
	}
}

// Normalize trims and lowercases an id
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Credentials derives the account email and password for a normalized id.
// The password is derivable from the id; anyone who knows an id can sign in as it.
func (g *Gateway) Credentials(id string) (email, password string) {
	return id + "@" + g.domain, "pass_" + id
}

// Login signs in as id, creating the account if the backend does not recognise it
func (g *Gateway) Login(ctx context.Context, id string) (*models.AuthUser, *oauth2.Token, error) {
	shortID := Normalize(id)
	if shortID == "" {
		return nil, nil, ErrEmptyID
	}
	email, password := g.Credentials(shortID)

	res, err := g.auth.SignIn(ctx, email, password)
	if err != nil {
		if !IsCredentialNotRecognized(err) {
			return nil, nil, err
		}

		g.logger.Info("no account for id, creating one", "short_id", shortID)
		res, err = g.auth.SignUp(ctx, email, password)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create account: %w", err)
		}
	}

	user := &models.AuthUser{UID: res.UID, Email: res.Email, ShortID: shortID}
	if user.Email == "" {
		user.Email = email
	}
	return user, g.token(res), nil
}

func (g *Gateway) token(res *Result) *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  res.IDToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
	}
	if res.ExpiresIn > 0 {
		tok.Expiry = g.now().Add(res.ExpiresIn)
	}
	return tok
}
