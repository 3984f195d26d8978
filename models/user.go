package models

import "time"

// AuthUser is the identity every repository operation is scoped to.
type AuthUser struct {
	UID     string `json:"uid"`
	Email   string `json:"email"`
	ShortID string `json:"shortId"`
}

type UserProfile struct {
	Name         string         `json:"name,omitempty"`
	ShortID      string         `json:"shortId,omitempty"`
	Email        string         `json:"email,omitempty"`
	Exam         string         `json:"exam,omitempty"`
	TargetDate   string         `json:"targetDate,omitempty"`
	AvatarURL    string         `json:"avatarUrl,omitempty"`
	Streak       int            `json:"streak"`
	Preferences  map[string]any `json:"preferences,omitempty"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty"`
	LastActiveAt *time.Time     `json:"lastActiveAt,omitempty"`
}

type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	ShortID      string    `json:"short_id"`
	IDToken      string    `json:"-"`
	RefreshToken string    `json:"-"`
	TokenExpiry  time.Time `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	LastUsedAt   time.Time `json:"last_used_at"`
}

// User returns the identity carried by the session.
func (s *Session) User() *AuthUser {
	return &AuthUser{UID: s.UserID, Email: s.Email, ShortID: s.ShortID}
}

type LoginRequest struct {
	ID string `json:"id" validate:"required,max=64,shortid"`
}
