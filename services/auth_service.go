package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"study-tracker/identity"
	"study-tracker/models"
	"study-tracker/session"
)

// AuthService handles authentication business logic
type AuthService struct {
	identity IdentityGateway
	sessions SessionStore
	profiles ProfileRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service. profiles may be nil.
func NewAuthService(gateway IdentityGateway, sessions SessionStore, profiles ProfileRepository, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		identity: gateway,
		sessions: sessions,
		profiles: profiles,
		logger:   logger.With("component", "auth_service"),
		now:      time.Now,
	}
}

// LoginResponse contains the session and additional login metadata
type LoginResponse struct {
	Session    *models.Session
	Profile    *models.UserProfile
	NewProfile bool
}

// Login signs in with a short id and opens a session. Unknown ids get an
// account and a starter profile.
func (as *AuthService) Login(ctx context.Context, id string) (*LoginResponse, error) {
	user, token, err := as.identity.Login(ctx, id)
	if err != nil {
		if errors.Is(err, identity.ErrEmptyID) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	sess, err := as.sessions.Create(ctx, user, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	resp := &LoginResponse{Session: sess}
	if as.profiles == nil {
		return resp, nil
	}

	userCtx := session.WithUser(ctx, user)
	now := as.now().UTC()
	profile := as.profiles.GetProfile(userCtx)
	if profile == nil {
		profile = &models.UserProfile{Name: user.ShortID, CreatedAt: &now}
		resp.NewProfile = true
	}
	profile.ShortID = user.ShortID
	profile.Email = user.Email
	profile.LastActiveAt = &now

	if err := as.profiles.SaveProfile(userCtx, profile); err != nil {
		as.logger.Warn("failed to record login on profile", "uid", user.UID, "error", err)
	}
	resp.Profile = profile
	return resp, nil
}

// Logout deletes a session
func (as *AuthService) Logout(ctx context.Context, sessionID string) error {
	return as.sessions.Delete(ctx, sessionID)
}

// GetSessionInfo retrieves session information
func (as *AuthService) GetSessionInfo(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := as.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
