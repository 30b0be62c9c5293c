package generator

import (
	"context"
	"errors"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/antoniostano/amara/internal/reliability"
)

const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 250 * time.Millisecond
	defaultBackoffCap  = 2 * time.Second
)

// Retrying wraps a Generator and retries transient upstream failures
// with capped exponential backoff. Context cancellation always wins.
type Retrying struct {
	inner       Generator
	maxAttempts int
	base        time.Duration
	cap         time.Duration
}

func NewRetrying(inner Generator) *Retrying {
	return &Retrying{
		inner:       inner,
		maxAttempts: defaultMaxAttempts,
		base:        defaultBackoffBase,
		cap:         defaultBackoffCap,
	}
}

func (r *Retrying) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			wait := reliability.ExponentialBackoff(attempt-1, r.base, r.cap)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}
		text, err := r.inner.Complete(ctx, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return "", err
		}
	}
	return "", lastErr
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return reliability.IsRetryableHTTPStatus(apiErr.StatusCode)
	}
	// Transport-level failures (connection reset, timeout) arrive as
	// plain errors rather than API errors.
	return true
}
