package trending

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisTopicsKey     = "amara:global:topics"
	redisLastUpdateKey = "amara:global:last_update"
)

// RedisStore keeps the topic window in a Redis list. LPUSH + LTRIM gives
// the capped FIFO directly: new topics land at the head and the trim
// drops the tail, which holds the oldest entries.
type RedisStore struct {
	client   *redis.Client
	capacity int
}

func NewRedisStore(redisURL string, capacity int) (*RedisStore, error) {
	if capacity <= 0 {
		capacity = DefaultWindowCapacity
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{client: redis.NewClient(opts), capacity: capacity}, nil
}

func (s *RedisStore) Find(ctx context.Context) (*GlobalProfile, error) {
	lastRaw, err := s.client.Get(ctx, redisLastUpdateKey).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get last update: %w", err)
	}
	last, err := time.Parse(time.RFC3339Nano, lastRaw)
	if err != nil {
		return nil, fmt.Errorf("parse last update: %w", err)
	}

	newestFirst, err := s.client.LRange(ctx, redisTopicsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read topic window: %w", err)
	}
	// The list is newest-first; callers expect chronological order.
	topics := make([]string, len(newestFirst))
	for i, t := range newestFirst {
		topics[len(newestFirst)-1-i] = t
	}
	return &GlobalProfile{RecentGlobalTopics: topics, LastUpdate: last}, nil
}

func (s *RedisStore) PushTopics(ctx context.Context, topics []string) error {
	if len(topics) == 0 {
		return nil
	}
	args := make([]interface{}, len(topics))
	for i, t := range topics {
		args[i] = t
	}
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, redisTopicsKey, args...)
	pipe.LTrim(ctx, redisTopicsKey, 0, int64(s.capacity)-1)
	pipe.Set(ctx, redisLastUpdateKey, time.Now().UTC().Format(time.RFC3339Nano), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push topics: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
