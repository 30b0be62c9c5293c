// Package chat runs the per-request loop: retrieve the working context,
// build the prompt, obtain a reply, persist the turn, and hand the
// exchange to the trending aggregator.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/antoniostano/amara/internal/generator"
	"github.com/antoniostano/amara/internal/memory"
	"github.com/antoniostano/amara/internal/observability"
	"github.com/antoniostano/amara/internal/prompt"
	"github.com/antoniostano/amara/internal/trending"
)

// Reply is the outcome of one exchange.
type Reply struct {
	Text string `json:"reply"`
	Mood string `json:"mood"`
}

type Service struct {
	manager    *memory.Manager
	gen        generator.Generator
	aggregator *trending.Aggregator
	metrics    *observability.Metrics
}

// NewService wires the loop. aggregator and metrics may be nil.
func NewService(manager *memory.Manager, gen generator.Generator, aggregator *trending.Aggregator, metrics *observability.Metrics) *Service {
	return &Service{manager: manager, gen: gen, aggregator: aggregator, metrics: metrics}
}

// Respond handles one message end to end. Retrieval never fails; a
// generator or store failure aborts the exchange and nothing is
// persisted for it.
func (s *Service) Respond(ctx context.Context, userID, username, message string) (Reply, error) {
	start := time.Now()
	res := s.manager.Retrieve(ctx, userID, message)
	if s.metrics != nil {
		s.metrics.ObserveRetrievalLatency(time.Since(start))
		s.metrics.ContextSize.Observe(float64(len(res.RelevantHistory)))
	}

	system, user := prompt.Build(res, message)
	text, err := s.gen.Complete(ctx, system, user)
	if err != nil {
		return Reply{}, fmt.Errorf("generate reply: %w", err)
	}
	text = strings.TrimSpace(text)

	updated, err := s.manager.RecordTurn(ctx, userID, username, message, text)
	if err != nil {
		if s.metrics != nil {
			s.metrics.StoreErrors.WithLabelValues("record_turn").Inc()
		}
		return Reply{}, err
	}
	if s.metrics != nil {
		s.metrics.TurnsRecorded.Inc()
	}

	if s.aggregator != nil {
		// Fire and forget: the caller's reply never waits on the
		// shared topic window.
		go s.aggregator.MaybeRecord(message, text)
	}

	return Reply{Text: text, Mood: updated.Mood}, nil
}
