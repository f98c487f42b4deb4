package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultSnapshotTTL bounds how long a roster snapshot outlives its last refresh.
const DefaultSnapshotTTL = 48 * time.Hour

// Store handles redis operations for the roster snapshot.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a new redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		ttl:    DefaultSnapshotTTL,
	}
}

// Ping reports whether redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
