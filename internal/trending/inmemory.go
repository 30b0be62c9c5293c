package trending

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps the topic window in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	topics   []string
	last     time.Time
	written  bool
}

func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultWindowCapacity
	}
	return &InMemoryStore{capacity: capacity}
}

func (s *InMemoryStore) Find(_ context.Context) (*GlobalProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.written {
		return nil, ErrNotFound
	}
	return &GlobalProfile{
		RecentGlobalTopics: append([]string(nil), s.topics...),
		LastUpdate:         s.last,
	}, nil
}

func (s *InMemoryStore) PushTopics(_ context.Context, topics []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topics...)
	if over := len(s.topics) - s.capacity; over > 0 {
		s.topics = append([]string(nil), s.topics[over:]...)
	}
	s.last = time.Now().UTC()
	s.written = true
	return nil
}

func (s *InMemoryStore) Close() error { return nil }
