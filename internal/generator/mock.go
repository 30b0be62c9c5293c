package generator

import (
	"context"
	"fmt"
	"strings"
)

// Mock is a deterministic generator for local development and tests.
// It never fails unless Err is set.
type Mock struct {
	// Reply, when set, is returned verbatim.
	Reply string
	// Err, when set, is returned instead of a reply.
	Err error
	// Calls records every prompt pair received.
	Calls []MockCall
}

type MockCall struct {
	System string
	User   string
}

func (m *Mock) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.Calls = append(m.Calls, MockCall{System: systemPrompt, User: userPrompt})
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	// Echo something derived from the prompt so callers can see the
	// loop working end to end without a backend.
	lines := strings.Split(strings.TrimSpace(userPrompt), "\n")
	last := lines[len(lines)-1]
	return fmt.Sprintf("(mock) you said: %s", strings.TrimSpace(last)), nil
}
