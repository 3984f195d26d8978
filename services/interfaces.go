package services

import (
	"context"

	"study-tracker/models"

	"golang.org/x/oauth2"
)

// IdentityGateway signs a user in by short id
type IdentityGateway interface {
	Login(ctx context.Context, id string) (*models.AuthUser, *oauth2.Token, error)
}

// SessionStore defines the interface for session management
type SessionStore interface {
	Create(ctx context.Context, user *models.AuthUser, token *oauth2.Token) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProfileRepository is the slice of the repository the auth flow touches
type ProfileRepository interface {
	GetProfile(ctx context.Context) *models.UserProfile
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}
