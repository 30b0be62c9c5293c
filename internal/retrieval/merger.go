package retrieval

import (
	"sort"
	"time"

	"github.com/antoniostano/amara/internal/profile"
)

// MergeConfig bounds the merged working set.
type MergeConfig struct {
	// RecentN trailing turns are always included.
	RecentN int
	// RelevantK top-scored turns are merged in.
	RelevantK int
	// MaxTotal caps the merged result.
	MaxTotal int
}

// DefaultMergeConfig returns the standard bounds.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{RecentN: 5, RelevantK: 5, MaxTotal: 8}
}

// Merge combines the trailing RecentN turns with the RelevantK
// best-scoring turns into one chronologically ordered, deduplicated set
// of at most MaxTotal turns. The recency set is included unconditionally;
// when the cap forces a cut, older turns are dropped first so the most
// recent turns always survive. Empty history yields an empty result.
func Merge(query string, history []profile.ConversationTurn, cfg MergeConfig) []profile.ConversationTurn {
	if len(history) == 0 {
		return nil
	}

	recentStart := len(history) - cfg.RecentN
	if recentStart < 0 {
		recentStart = 0
	}
	recent := history[recentStart:]

	seen := make(map[profile.TurnIdentity]struct{}, len(recent))
	merged := make([]profile.ConversationTurn, 0, len(recent)+cfg.RelevantK)
	for _, turn := range recent {
		id := turn.Identity()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, turn)
	}

	scores := Score(query, history)
	order := make([]int, len(history))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	// Top RelevantK by score first, then drop the ones already covered
	// by the recency set. Dedup only shrinks the relevance
	// contribution; lower-ranked turns never take a dropped slot.
	top := order
	switch {
	case cfg.RelevantK <= 0:
		top = nil
	case cfg.RelevantK < len(top):
		top = top[:cfg.RelevantK]
	}
	for _, idx := range top {
		turn := history[idx]
		if _, dup := seen[turn.Identity()]; dup {
			continue
		}
		seen[turn.Identity()] = struct{}{}
		merged = append(merged, turn)
	}

	now := time.Now().UTC()
	sort.SliceStable(merged, func(a, b int) bool {
		return effectiveTime(merged[a], now).Before(effectiveTime(merged[b], now))
	})

	if cfg.MaxTotal > 0 && len(merged) > cfg.MaxTotal {
		merged = merged[len(merged)-cfg.MaxTotal:]
	}
	return merged
}

// effectiveTime treats a missing timestamp as "now" so undated turns sort
// to the end rather than the beginning. now is fixed per Merge call so
// the comparator stays consistent across invocations.
func effectiveTime(t profile.ConversationTurn, now time.Time) time.Time {
	if t.Timestamp.IsZero() {
		return now
	}
	return t.Timestamp
}
