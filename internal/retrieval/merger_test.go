package retrieval

import (
	"fmt"
	"testing"

	"github.com/antoniostano/amara/internal/profile"
)

func sequentialHistory(n int) []profile.ConversationTurn {
	out := make([]profile.ConversationTurn, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, turnAt(i, fmt.Sprintf("message %d", i), fmt.Sprintf("reply %d", i)))
	}
	return out
}

func TestMergeEmptyHistory(t *testing.T) {
	if got := Merge("query", nil, DefaultMergeConfig()); len(got) != 0 {
		t.Fatalf("Merge() = %v, want empty", got)
	}
}

func TestMergeBoundedAndSorted(t *testing.T) {
	cfg := DefaultMergeConfig()
	for _, n := range []int{1, 4, 8, 20, 60} {
		merged := Merge("message 2", sequentialHistory(n), cfg)
		if len(merged) > cfg.MaxTotal {
			t.Fatalf("n=%d: len = %d, exceeds MaxTotal %d", n, len(merged), cfg.MaxTotal)
		}
		for i := 1; i < len(merged); i++ {
			if merged[i].Timestamp.Before(merged[i-1].Timestamp) {
				t.Fatalf("n=%d: output not chronologically ordered", n)
			}
		}
	}
}

func TestMergeRecencyGuarantee(t *testing.T) {
	cfg := DefaultMergeConfig()
	history := sequentialHistory(30)
	merged := Merge("totally unrelated words here", history, cfg)

	tail := history[len(history)-cfg.RecentN:]
	for _, want := range tail {
		found := false
		for _, got := range merged {
			if got.Identity() == want.Identity() {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("recent turn %q missing from merged output", want.Message)
		}
	}
}

func TestMergeNoDuplicateIdentities(t *testing.T) {
	history := sequentialHistory(30)
	// Duplicate a recent turn elsewhere in history.
	history[10] = history[28]
	merged := Merge("message 28", history, DefaultMergeConfig())

	seen := make(map[profile.TurnIdentity]struct{})
	for _, turn := range merged {
		id := turn.Identity()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identity in merged output: %+v", id)
		}
		seen[id] = struct{}{}
	}
}

func TestMergeIncludesRelevantOldTurn(t *testing.T) {
	history := make([]profile.ConversationTurn, 0, 60)
	for i := 0; i < 60; i++ {
		msg := fmt.Sprintf("ordinary chatter number %d", i)
		if i == 3 {
			msg = "remember the jazz concert in Naples with Sofia"
		}
		history = append(history, turnAt(i, msg, "noted"))
	}

	merged := Merge("remember the jazz concert in Naples with Sofia", history, DefaultMergeConfig())
	found := false
	for _, turn := range merged {
		if turn.Identity() == history[3].Identity() {
			found = true
		}
	}
	if !found {
		t.Fatalf("turn #3 should be merged in on relevance despite its age")
	}
}

// When the best-scoring turns are the recent ones, the relevance
// contribution dedups away entirely. Lower-ranked turns must not
// back-fill the freed slots.
func TestMergeDedupShrinksRelevanceSet(t *testing.T) {
	cfg := DefaultMergeConfig()
	history := make([]profile.ConversationTurn, 0, 10)
	for i := 0; i < 5; i++ {
		history = append(history, turnAt(i, fmt.Sprintf("aardvark quokka wombat %d", i), "noted"))
	}
	for i := 5; i < 10; i++ {
		history = append(history, turnAt(i, fmt.Sprintf("planning the jazz concert trip %d", i), "noted"))
	}

	merged := Merge("planning the jazz concert trip", history, cfg)
	if len(merged) != cfg.RecentN {
		t.Fatalf("len = %d, want %d: relevance set should dedup to empty, not back-fill", len(merged), cfg.RecentN)
	}
	for _, turn := range merged {
		if turn.Timestamp.Before(history[5].Timestamp) {
			t.Fatalf("unrelated old turn %q merged in", turn.Message)
		}
	}
}

func TestMergeMissingTimestampsSortLast(t *testing.T) {
	history := sequentialHistory(3)
	undated := profile.ConversationTurn{Message: "undated", Response: "r"}
	history = append([]profile.ConversationTurn{undated}, history...)

	merged := Merge("undated", history, MergeConfig{RecentN: 4, RelevantK: 2, MaxTotal: 10})
	if len(merged) == 0 {
		t.Fatalf("merged output should not be empty")
	}
	if merged[len(merged)-1].Message != "undated" {
		t.Fatalf("undated turn should sort as now (last), got order ending %q", merged[len(merged)-1].Message)
	}
}

func TestMergeCapDropsOldestFirst(t *testing.T) {
	history := sequentialHistory(40)
	cfg := MergeConfig{RecentN: 5, RelevantK: 5, MaxTotal: 6}
	merged := Merge("message 0 message 1 message 2", history, cfg)
	if len(merged) > cfg.MaxTotal {
		t.Fatalf("len = %d, exceeds cap %d", len(merged), cfg.MaxTotal)
	}
	// The newest turn must survive the cut.
	last := history[len(history)-1]
	if merged[len(merged)-1].Identity() != last.Identity() {
		t.Fatalf("most recent turn was dropped by the cap")
	}
}

// timestamps in sequentialHistory are distinct, so identity dedup relies
// on both fields; this guards against regressions that key on message
// text alone.
func TestMergeSameMessageDifferentTimes(t *testing.T) {
	history := []profile.ConversationTurn{
		turnAt(0, "same text", "a"),
		turnAt(1, "same text", "b"),
	}
	merged := Merge("same text", history, DefaultMergeConfig())
	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2: same message at different times is two turns", len(merged))
	}
}
