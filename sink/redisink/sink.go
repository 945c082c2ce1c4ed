// Package redisink provides a ready-made donation sink that pushes encoded
// donations onto a Redis list. The engine core stays sink-agnostic; this
// adapter is for hosts whose donation consumer reads from Redis.
package redisink

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/Swind/go-intent-engine/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultKey is the Redis list donations are pushed to when no key is given.
const DefaultKey = "intentengine:donations"

// envelope is the wire form of a donation. Payload must be JSON-encodable;
// opaque payloads that are not should use a custom sink instead.
type envelope struct {
	ID         string    `json:"id"`
	IntentType string    `json:"intent_type"`
	CreatedAt  time.Time `json:"created_at"`
	Payload    any       `json:"payload,omitempty"`
}

// Sink pushes donations onto a Redis list with RPUSH, preserving hand-off
// order for a single producer.
type Sink struct {
	client redis.UniversalClient
	key    string
}

// New creates a sink writing to the given key. An empty key falls back to
// DefaultKey. Panics if client is nil.
func New(client redis.UniversalClient, key string) *Sink {
	if client == nil {
		panic("redisink: client must not be nil")
	}
	if key == "" {
		key = DefaultKey
	}
	return &Sink{client: client, key: key}
}

// Key returns the Redis list key this sink writes to.
func (s *Sink) Key() string {
	return s.key
}

// Donate encodes the donation and appends it to the list. It satisfies
// core.Sink via s.Sink().
func (s *Sink) Donate(ctx context.Context, d core.Donation) error {
	data, err := encode(d)
	if err != nil {
		return fmt.Errorf("encode donation %s: %w", d.ID, err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("push donation %s to %q: %w", d.ID, s.key, err)
	}
	return nil
}

// Sink returns the function form expected by the dispatcher.
func (s *Sink) Sink() core.Sink {
	return s.Donate
}

func encode(d core.Donation) ([]byte, error) {
	return json.Marshal(envelope{
		ID:         d.ID.String(),
		IntentType: d.IntentType,
		CreatedAt:  d.CreatedAt,
		Payload:    d.Payload,
	})
}
