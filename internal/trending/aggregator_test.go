package trending

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
)

type failingGlobalStore struct{}

func (failingGlobalStore) Find(context.Context) (*GlobalProfile, error) {
	return nil, errors.New("down")
}
func (failingGlobalStore) PushTopics(context.Context, []string) error {
	return errors.New("down")
}
func (failingGlobalStore) Close() error { return nil }

func alwaysSample() float64 { return 0.0 }
func neverSample() float64  { return 0.99 }

func TestMaybeRecordSampledBranch(t *testing.T) {
	store := NewInMemoryStore(25)
	agg := NewAggregator(store, DefaultSampleRate, alwaysSample, nil)

	agg.MaybeRecord("any good pizza around?", "try the place near the harbour")

	g, err := store.Find(context.Background())
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(g.RecentGlobalTopics) == 0 {
		t.Fatalf("sampled turn should have pushed topics")
	}
}

func TestMaybeRecordFiresPushHook(t *testing.T) {
	store := NewInMemoryStore(25)
	agg := NewAggregator(store, DefaultSampleRate, alwaysSample, nil)
	pushes := 0
	agg.SetOnPush(func() { pushes++ })

	agg.MaybeRecord("any good pizza around?", "sure")
	agg.MaybeRecord("nothing topical here", "ok")

	// Only the turn that actually pushed counts.
	if pushes != 1 {
		t.Fatalf("pushes = %d, want 1", pushes)
	}
}

func TestMaybeRecordSkippedBranch(t *testing.T) {
	store := NewInMemoryStore(25)
	agg := NewAggregator(store, DefaultSampleRate, neverSample, nil)

	agg.MaybeRecord("any good pizza around?", "sure")

	if _, err := store.Find(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("skipped turn must not write; Find err = %v", err)
	}
}

func TestMaybeRecordSwallowsAndLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	agg := NewAggregator(failingGlobalStore{}, DefaultSampleRate, alwaysSample, log.New(&buf, "", 0))

	// Must not panic or propagate anything.
	agg.MaybeRecord("any good pizza around?", "sure")

	if !strings.Contains(buf.String(), "topic push failed") {
		t.Fatalf("failure should be logged, got %q", buf.String())
	}
}

func TestMaybeRecordUnionsMessageAndResponseTopics(t *testing.T) {
	store := NewInMemoryStore(25)
	agg := NewAggregator(store, DefaultSampleRate, alwaysSample, nil)

	agg.MaybeRecord("any good pizza around?", "walk the dog there first")

	g, err := store.Find(context.Background())
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	want := map[string]bool{"food": false, "pets": false}
	for _, topic := range g.RecentGlobalTopics {
		if _, ok := want[topic]; ok {
			want[topic] = true
		}
	}
	for topic, found := range want {
		if !found {
			t.Errorf("topic %q missing from window: %v", topic, g.RecentGlobalTopics)
		}
	}
}

func TestWindowEvictsOldestFIFO(t *testing.T) {
	store := NewInMemoryStore(25)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if err := store.PushTopics(ctx, []string{fmt.Sprintf("old-%d", i)}); err != nil {
			t.Fatalf("PushTopics() error = %v", err)
		}
	}
	if err := store.PushTopics(ctx, []string{"new-a", "new-b", "new-c"}); err != nil {
		t.Fatalf("PushTopics() error = %v", err)
	}

	g, err := store.Find(ctx)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	topics := g.RecentGlobalTopics
	if len(topics) != 25 {
		t.Fatalf("window size = %d, want 25", len(topics))
	}
	// Exactly the 3 oldest entries were evicted.
	if topics[0] != "old-3" {
		t.Errorf("topics[0] = %q, want old-3", topics[0])
	}
	if topics[24] != "new-c" {
		t.Errorf("topics[24] = %q, want new-c", topics[24])
	}
}

func TestInMemoryStoreNeverWritten(t *testing.T) {
	if _, err := NewInMemoryStore(10).Find(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find on empty store err = %v, want ErrNotFound", err)
	}
}
