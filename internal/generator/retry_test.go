package generator

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flaky struct {
	failures int
	calls    int
	err      error
}

func (f *flaky) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return "ok", nil
}

func newFastRetrying(inner Generator) *Retrying {
	r := NewRetrying(inner)
	r.base = time.Millisecond
	r.cap = 2 * time.Millisecond
	return r
}

func TestRetryingRecoversFromTransientFailure(t *testing.T) {
	inner := &flaky{failures: 2, err: errors.New("connection reset")}
	r := newFastRetrying(inner)

	text, err := r.Complete(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "ok" {
		t.Fatalf("text = %q", text)
	}
	if inner.calls != 3 {
		t.Fatalf("calls = %d, want 3", inner.calls)
	}
}

func TestRetryingGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flaky{failures: 10, err: errors.New("still down")}
	r := newFastRetrying(inner)

	if _, err := r.Complete(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if inner.calls != defaultMaxAttempts {
		t.Fatalf("calls = %d, want %d", inner.calls, defaultMaxAttempts)
	}
}

func TestRetryingDoesNotRetryCancellation(t *testing.T) {
	inner := &flaky{failures: 10, err: context.Canceled}
	r := newFastRetrying(inner)

	_, err := r.Complete(context.Background(), "sys", "user")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if inner.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry on cancellation)", inner.calls)
	}
}
