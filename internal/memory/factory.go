package memory

import (
	"context"
	"log"
	"strings"
)

// NewStore creates a postgres-backed profile store when DATABASE_URL is
// configured, otherwise an in-memory one. The in-memory store loses all
// profiles on restart.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		log.Printf("profile store: in-memory (no DATABASE_URL)")
		return NewInMemoryStore(), nil
	}
	return NewPostgresStore(ctx, databaseURL)
}
