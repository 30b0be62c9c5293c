package memory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/antoniostano/amara/internal/policy"
	"github.com/antoniostano/amara/internal/profile"
	"github.com/antoniostano/amara/internal/retrieval"
	"github.com/antoniostano/amara/internal/signals"
	"github.com/antoniostano/amara/internal/trending"
)

// ManagerConfig bounds retrieval and retention.
type ManagerConfig struct {
	Merge retrieval.MergeConfig
	// MaxHistory is the stored-history cap that triggers retention.
	MaxHistory int
	// RetainOldest turns survive retention as founding context; the
	// rest of the kept window is the most recent suffix.
	RetainOldest       int
	DefaultPersonality string
	// RedactPII masks emails, phone and card numbers before a turn is
	// persisted. Retrieval then only ever sees the redacted form.
	RedactPII bool
}

// DefaultManagerConfig returns the standard bounds.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		Merge:              retrieval.DefaultMergeConfig(),
		MaxHistory:         50,
		RetainOldest:       5,
		DefaultPersonality: "a warm, attentive companion who remembers the small things",
		RedactPII:          true,
	}
}

// Manager is the profile store orchestrator: it owns the read path
// (Retrieve) and the write path (RecordTurn) over the user store, and
// reads the shared global profile for trending topics.
type Manager struct {
	store  Store
	global trending.Store
	cfg    ManagerConfig
	now    func() time.Time
}

func NewManager(store Store, global trending.Store, cfg ManagerConfig) *Manager {
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 50
	}
	if cfg.RetainOldest < 0 {
		cfg.RetainOldest = 0
	}
	return &Manager{store: store, global: global, cfg: cfg, now: time.Now}
}

// SetClock overrides the manager's clock. Tests only.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

// Retrieve assembles the working context for a query. It never fails:
// an absent or unreadable profile degrades to a default result with
// neutral mood, empty histories and the configured personality.
func (m *Manager) Retrieve(ctx context.Context, userID, query string) profile.RetrievalResult {
	res := profile.RetrievalResult{
		UserInfo:       profile.UserInfo{Mood: string(signals.MoodNeutral)},
		BotPersonality: m.cfg.DefaultPersonality,
	}

	p, err := m.store.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("memory: profile read for %q failed, using defaults: %v", userID, err)
		}
		p = &profile.UserProfile{UserID: userID, Mood: string(signals.MoodNeutral)}
	}

	res.UserInfo = profile.UserInfo{
		Username:      p.Username,
		Mood:          p.Mood,
		Preferences:   p.Preferences,
		ContextTokens: p.ContextTokens,
		LastActive:    p.LastActive,
	}
	if res.UserInfo.Mood == "" {
		res.UserInfo.Mood = string(signals.MoodNeutral)
	}

	history := p.ConversationHistory
	if n := len(history); n > 0 {
		start := n - m.cfg.Merge.RecentN
		if start < 0 {
			start = 0
		}
		res.RecentHistory = history[start:]
		res.PreviousBotMessage = history[n-1].Response
	}
	res.RelevantHistory = retrieval.Merge(query, history, m.cfg.Merge)

	if m.global != nil {
		g, err := m.global.Find(ctx)
		switch {
		case err == nil:
			res.GlobalTopics = g.RecentGlobalTopics
			if g.BotPersonality != "" {
				res.BotPersonality = g.BotPersonality
			}
		case !errors.Is(err, trending.ErrNotFound):
			log.Printf("memory: global profile read failed, using defaults: %v", err)
		}
	}

	return res
}

// RecordTurn extracts signals from the exchange and upserts the user
// document: field sets, the appended turn, the preferences replace (only
// when this turn extracted any) and the context-token union happen in
// one store write. Retention runs afterwards as a follow-up write.
// Store failures propagate; a lost write means the persisted history no
// longer matches the conversation the caller just had.
func (m *Manager) RecordTurn(ctx context.Context, userID, username, message, response string) (*profile.UserProfile, error) {
	now := m.now().UTC()
	if m.cfg.RedactPII {
		message, _ = policy.RedactPII(message)
		response, _ = policy.RedactPII(response)
	}
	entities := signals.ExtractEntities(message)
	// Entities come from the redacted text; the markers themselves must
	// never reach the context-token union, which only ever grows.
	kept := entities[:0]
	for _, e := range entities {
		if !policy.IsRedactionMarker(e) {
			kept = append(kept, e)
		}
	}
	entities = kept
	prefs := signals.ExtractPreferences(message, response)

	update := TurnUpdate{
		Username:        username,
		Mood:            string(signals.DetectMood(message)),
		LastBotResponse: response,
		LastActive:      now,
		Turn: profile.ConversationTurn{
			ID:        uuid.NewString(),
			Message:   message,
			Response:  response,
			Timestamp: now,
			Entities:  entities,
		},
		Entities: entities,
	}
	if len(prefs) > 0 {
		update.Preferences = prefs
	}

	updated, err := m.store.RecordTurn(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("record turn for %q: %w", userID, err)
	}

	if len(updated.ConversationHistory) > m.cfg.MaxHistory {
		trimmed := trimHistory(updated.ConversationHistory, m.cfg.MaxHistory, m.cfg.RetainOldest)
		if err := m.store.ReplaceHistory(ctx, userID, trimmed); err != nil {
			return nil, fmt.Errorf("trim history for %q: %w", userID, err)
		}
		updated.ConversationHistory = trimmed
	}

	return updated, nil
}

// trimHistory applies the retention policy: keep the oldest retainOldest
// turns as founding context plus the most recent maxHistory-retainOldest
// turns, discarding the middle.
func trimHistory(history []profile.ConversationTurn, maxHistory, retainOldest int) []profile.ConversationTurn {
	if len(history) <= maxHistory {
		return history
	}
	if retainOldest > maxHistory {
		retainOldest = maxHistory
	}
	recent := maxHistory - retainOldest
	out := make([]profile.ConversationTurn, 0, maxHistory)
	out = append(out, history[:retainOldest]...)
	out = append(out, history[len(history)-recent:]...)
	return out
}
