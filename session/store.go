// Package session keeps signed-in sessions and carries the current user through request contexts.
package session

import (
	"context"
	"sync"
	"time"

	"study-tracker/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Lifetime is how long a session stays valid after it is created
const Lifetime = 30 * 24 * time.Hour

// Store persists sessions. Get returns nil, nil for unknown or expired ids.
type Store interface {
	Create(ctx context.Context, user *models.AuthUser, token *oauth2.Token) (*models.Session, error)
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

func newSession(user *models.AuthUser, token *oauth2.Token, now time.Time) *models.Session {
	s := &models.Session{
		ID:         uuid.New().String(),
		UserID:     user.UID,
		Email:      user.Email,
		ShortID:    user.ShortID,
		ExpiresAt:  now.Add(Lifetime),
		CreatedAt:  now,
		LastUsedAt: now,
	}
	if token != nil {
		s.IDToken = token.AccessToken
		s.RefreshToken = token.RefreshToken
		s.TokenExpiry = token.Expiry
	}
	return s
}

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

func (s *MemoryStore) Create(ctx context.Context, user *models.AuthUser, token *oauth2.Token) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := newSession(user, token, time.Now())
	s.sessions[session.ID] = session
	return session, nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, nil
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, nil
	}

	session.LastUsedAt = time.Now()
	return session, nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// Len is the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) CleanupExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

// StartCleanupRoutine drops expired sessions every interval until ctx is done
func (s *MemoryStore) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.CleanupExpired()
			}
		}
	}()
}
