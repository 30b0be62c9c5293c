package trending

import (
	"context"
	"strings"
)

// DefaultWindowCapacity caps the sliding topic window.
const DefaultWindowCapacity = 25

// NewStore picks the backing store for the global profile: Redis when a
// redis URL is configured, otherwise Postgres, otherwise in-memory.
func NewStore(ctx context.Context, databaseURL, redisURL string, capacity int) (Store, error) {
	if strings.TrimSpace(redisURL) != "" {
		return NewRedisStore(redisURL, capacity)
	}
	if strings.TrimSpace(databaseURL) != "" {
		return NewPostgresStore(ctx, databaseURL, capacity)
	}
	return NewInMemoryStore(capacity), nil
}
