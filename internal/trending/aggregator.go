package trending

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/antoniostano/amara/internal/signals"
)

// DefaultSampleRate is the fraction of recorded turns that feed the
// global window.
const DefaultSampleRate = 0.15

// Aggregator samples recorded turns and pushes their topics into the
// shared window. It is strictly best-effort: it never blocks the
// caller's write path and never surfaces an error.
type Aggregator struct {
	store      Store
	sampleRate float64
	randFloat  func() float64
	timeout    time.Duration
	logger     *log.Logger
	onPush     func()
}

// NewAggregator builds an aggregator. randFloat is the injectable
// randomness source; pass nil for math/rand. logger nil means the
// standard logger.
func NewAggregator(store Store, sampleRate float64, randFloat func() float64, logger *log.Logger) *Aggregator {
	if randFloat == nil {
		randFloat = rand.Float64
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		store:      store,
		sampleRate: sampleRate,
		randFloat:  randFloat,
		timeout:    5 * time.Second,
		logger:     logger,
	}
}

// SetOnPush registers a hook invoked after every successful window push,
// used for counting updates.
func (a *Aggregator) SetOnPush(fn func()) {
	a.onPush = fn
}

// MaybeRecord samples this turn; when selected it extracts topics from
// message and response independently, unions them, and pushes the result
// into the window. Failures are logged and swallowed. The push runs
// under the aggregator's own context, detached from the caller's.
func (a *Aggregator) MaybeRecord(message, response string) {
	if a.randFloat() >= a.sampleRate {
		return
	}

	topics := unionStrings(signals.ExtractTopics(message), signals.ExtractTopics(response))
	if len(topics) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	if err := a.store.PushTopics(ctx, topics); err != nil {
		a.logger.Printf("trending: topic push failed (dropped): %v", err)
		return
	}
	if a.onPush != nil {
		a.onPush()
	}
}

func unionStrings(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, items := range [][]string{a, b} {
		for _, it := range items {
			if _, ok := seen[it]; ok {
				continue
			}
			seen[it] = struct{}{}
			out = append(out, it)
		}
	}
	return out
}
