// Package generator wraps the text-completion backend behind a small
// interface. The engine treats it as opaque: a prompt goes in, a reply
// comes out.
package generator

import "context"

// Generator produces a reply for an assembled prompt.
type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
