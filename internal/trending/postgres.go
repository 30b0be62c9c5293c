package trending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps the singleton global profile in a one-row table.
// PushTopics is a single statement: append, then keep only the trailing
// window, so concurrent pushes stay consistent without a transaction.
type PostgresStore struct {
	pool     *pgxpool.Pool
	capacity int
}

func NewPostgresStore(ctx context.Context, databaseURL string, capacity int) (*PostgresStore, error) {
	if capacity <= 0 {
		capacity = DefaultWindowCapacity
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initGlobalSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool, capacity: capacity}, nil
}

func initGlobalSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmt := `CREATE TABLE IF NOT EXISTS global_profile (
		id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		bot_personality TEXT NOT NULL DEFAULT '',
		recent_topics JSONB NOT NULL DEFAULT '[]'::jsonb,
		last_update TIMESTAMPTZ NOT NULL DEFAULT now()
	);`
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("init global schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context) (*GlobalProfile, error) {
	var (
		g          GlobalProfile
		topicsJSON []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT bot_personality, recent_topics, last_update FROM global_profile WHERE id = 1`,
	).Scan(&g.BotPersonality, &topicsJSON, &g.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find global profile: %w", err)
	}
	if err := json.Unmarshal(topicsJSON, &g.RecentGlobalTopics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	return &g, nil
}

func (s *PostgresStore) PushTopics(ctx context.Context, topics []string) error {
	topicsJSON, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO global_profile (id, recent_topics, last_update)
		 VALUES (1, $1::jsonb, now())
		 ON CONFLICT (id) DO UPDATE SET
			recent_topics = (
				SELECT COALESCE(jsonb_agg(elem ORDER BY ord), '[]'::jsonb)
				FROM (
					SELECT elem, ord
					FROM jsonb_array_elements(global_profile.recent_topics || $1::jsonb)
						WITH ORDINALITY AS t(elem, ord)
					ORDER BY ord DESC
					LIMIT $2
				) tail
			),
			last_update = now()`,
		topicsJSON, s.capacity,
	)
	if err != nil {
		return fmt.Errorf("push topics: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
