// Package trending maintains the deployment-wide trending-topics window:
// a bounded FIFO of topic tags observed across all users, sampled
// probabilistically from recorded turns.
package trending

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports that the global profile has never been written.
var ErrNotFound = errors.New("global profile not found")

// GlobalProfile is the singleton shared across all users. BotPersonality
// is externally configured and read-only to this engine.
type GlobalProfile struct {
	BotPersonality     string    `json:"bot_personality,omitempty"`
	RecentGlobalTopics []string  `json:"recent_global_topics"`
	LastUpdate         time.Time `json:"last_update"`
}

// Store is the global-profile boundary. PushTopics appends to the
// sliding window, evicting oldest entries beyond the implementation's
// configured capacity, and refreshes LastUpdate. The profile is created
// lazily on first push.
type Store interface {
	Find(ctx context.Context) (*GlobalProfile, error)
	PushTopics(ctx context.Context, topics []string) error
	Close() error
}
