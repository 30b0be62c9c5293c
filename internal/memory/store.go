// Package memory orchestrates reads and writes of persisted user
// profiles: context retrieval on the way in, signal extraction and
// retention on the way out.
package memory

import (
	"context"
	"errors"
	"time"

	"github.com/antoniostano/amara/internal/profile"
)

// ErrNotFound reports an absent user document.
var ErrNotFound = errors.New("profile not found")

// TurnUpdate is one atomic write against a user document. Field sets,
// the history append, the optional preferences replace and the
// context-token union all land in a single store operation.
type TurnUpdate struct {
	Username        string
	Mood            string
	LastBotResponse string
	LastActive      time.Time
	Turn            profile.ConversationTurn
	// Preferences replaces the stored mapping wholesale when non-nil.
	// nil leaves the stored preferences untouched.
	Preferences map[string][]string
	// Entities are unioned into the profile's context tokens.
	Entities []string
}

// Store is the per-user document store boundary. Implementations must
// provide upsert semantics: RecordTurn against an absent user creates
// the document and never reports not-found.
type Store interface {
	Find(ctx context.Context, userID string) (*profile.UserProfile, error)
	RecordTurn(ctx context.Context, userID string, update TurnUpdate) (*profile.UserProfile, error)
	// ReplaceHistory persists a retention-trimmed history as a
	// follow-up write.
	ReplaceHistory(ctx context.Context, userID string, history []profile.ConversationTurn) error
	Close() error
}
