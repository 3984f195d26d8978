package sync

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher_Hooks(t *testing.T) {
	s := miniredis.RunT(t)

	pub, err := NewRedisPublisher("redis://"+s.Addr(), "study-sync", nil)
	require.NoError(t, err)
	defer pub.Close()

	ctx := context.Background()
	subscriber := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer subscriber.Close()

	sub := subscriber.Subscribe(ctx, "study-sync")
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)
	messages := sub.Channel()

	n := NewNotifier()
	n.Register(pub.Hooks())
	require.NoError(t, n.Track(func() error { return nil }))

	var got []string
	for len(got) < 2 {
		select {
		case msg := <-messages:
			var ev Event
			require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
			got = append(got, ev.Type)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for sync events, got %v", got)
		}
	}

	assert.Equal(t, []string{EventStart, EventEnd}, got)
}

func TestNewRedisPublisher_BadURL(t *testing.T) {
	_, err := NewRedisPublisher("not-a-url", "", nil)
	assert.Error(t, err)
}
