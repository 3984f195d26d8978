package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	EventStart = "start"
	EventEnd   = "end"
)

// Event is the message published for every hook call
type Event struct {
	Type string    `json:"event"`
	At   time.Time `json:"at"`
}

// RedisPublisher fans sync start/end events out over a Redis channel so UIs in
// other processes can follow them.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisPublisher connects to redisURL and publishes on channel
func NewRedisPublisher(redisURL, channel string, logger *slog.Logger) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewRedisPublisherWithClient(client, channel, logger), nil
}

// NewRedisPublisherWithClient creates a publisher from an existing Redis client
func NewRedisPublisherWithClient(client *redis.Client, channel string, logger *slog.Logger) *RedisPublisher {
	if channel == "" {
		channel = "sync"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger.With("component", "sync_publisher"),
	}
}

// Publish sends one event
func (p *RedisPublisher) Publish(ctx context.Context, eventType string) error {
	raw, err := json.Marshal(Event{Type: eventType, At: time.Now().UTC()})
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, raw).Err()
}

// Hooks returns a hook pair for Notifier.Register. Publish failures are logged.
func (p *RedisPublisher) Hooks() Hooks {
	return Hooks{
		Start: func() { p.publish(EventStart) },
		End:   func() { p.publish(EventEnd) },
	}
}

func (p *RedisPublisher) publish(eventType string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Publish(ctx, eventType); err != nil {
		p.logger.Warn("failed to publish sync event", "event", eventType, "error", err)
	}
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
