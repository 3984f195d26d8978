package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"study-tracker/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

// record is the stored form of a session, tokens included
type record struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	ShortID      string    `json:"short_id"`
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenExpiry  time.Time `json:"token_expiry"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStore keeps sessions in Redis with a TTL matching their expiry
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to redisURL and checks the connection
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (s *RedisStore) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *RedisStore) Create(ctx context.Context, user *models.AuthUser, token *oauth2.Token) (*models.Session, error) {
	session := newSession(user, token, time.Now())

	data, err := json.Marshal(record{
		UserID:       session.UserID,
		Email:        session.Email,
		ShortID:      session.ShortID,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
		TokenExpiry:  session.TokenExpiry,
		ExpiresAt:    session.ExpiresAt,
		CreatedAt:    session.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, s.key(session.ID), data, time.Until(session.ExpiresAt)).Err(); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	if time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}

	return &models.Session{
		ID:           sessionID,
		UserID:       rec.UserID,
		Email:        rec.Email,
		ShortID:      rec.ShortID,
		IDToken:      rec.IDToken,
		RefreshToken: rec.RefreshToken,
		TokenExpiry:  rec.TokenExpiry,
		ExpiresAt:    rec.ExpiresAt,
		CreatedAt:    rec.CreatedAt,
		LastUsedAt:   time.Now(),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
