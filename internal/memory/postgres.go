package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/antoniostano/amara/internal/profile"
)

// PostgresStore persists user profiles as single JSONB-backed rows.
// Every RecordTurn is one INSERT ... ON CONFLICT statement, so the field
// sets, history append and context-token union are atomic per document
// without cross-statement transactions.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initProfileSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initProfileSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id TEXT PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			mood TEXT NOT NULL DEFAULT 'neutral',
			preferences JSONB NOT NULL DEFAULT '{}'::jsonb,
			context_tokens JSONB NOT NULL DEFAULT '[]'::jsonb,
			last_bot_response TEXT NOT NULL DEFAULT '',
			last_active TIMESTAMPTZ NOT NULL DEFAULT now(),
			history JSONB NOT NULL DEFAULT '[]'::jsonb
		);`,
		`CREATE INDEX IF NOT EXISTS idx_user_profiles_last_active ON user_profiles (last_active);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init profile schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, userID string) (*profile.UserProfile, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT user_id, username, mood, preferences, context_tokens, last_bot_response, last_active, history
		 FROM user_profiles WHERE user_id=$1`,
		userID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) RecordTurn(ctx context.Context, userID string, update TurnUpdate) (*profile.UserProfile, error) {
	turnJSON, err := json.Marshal(update.Turn)
	if err != nil {
		return nil, fmt.Errorf("marshal turn: %w", err)
	}
	entitiesJSON, err := json.Marshal(emptyIfNil(update.Entities))
	if err != nil {
		return nil, fmt.Errorf("marshal entities: %w", err)
	}
	var prefsJSON []byte
	if update.Preferences != nil {
		prefsJSON, err = json.Marshal(update.Preferences)
		if err != nil {
			return nil, fmt.Errorf("marshal preferences: %w", err)
		}
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO user_profiles
			(user_id, username, mood, preferences, context_tokens, last_bot_response, last_active, history)
		 VALUES
			($1, $2, $3, COALESCE($4::jsonb, '{}'::jsonb), $5::jsonb, $6, $7, jsonb_build_array($8::jsonb))
		 ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			mood = EXCLUDED.mood,
			last_bot_response = EXCLUDED.last_bot_response,
			last_active = EXCLUDED.last_active,
			preferences = COALESCE($4::jsonb, user_profiles.preferences),
			context_tokens = (
				SELECT COALESCE(jsonb_agg(DISTINCT tok), '[]'::jsonb)
				FROM jsonb_array_elements(user_profiles.context_tokens || $5::jsonb) AS tok
			),
			history = user_profiles.history || $8::jsonb
		 RETURNING user_id, username, mood, preferences, context_tokens, last_bot_response, last_active, history`,
		userID,
		update.Username,
		update.Mood,
		prefsJSON,
		entitiesJSON,
		update.LastBotResponse,
		update.LastActive,
		turnJSON,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("record turn: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ReplaceHistory(ctx context.Context, userID string, history []profile.ConversationTurn) error {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE user_profiles SET history = $2::jsonb WHERE user_id = $1`,
		userID, historyJSON,
	)
	if err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanProfile(row pgx.Row) (*profile.UserProfile, error) {
	var (
		p           profile.UserProfile
		prefsJSON   []byte
		tokensJSON  []byte
		historyJSON []byte
	)
	if err := row.Scan(&p.UserID, &p.Username, &p.Mood, &prefsJSON, &tokensJSON,
		&p.LastBotResponse, &p.LastActive, &historyJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(prefsJSON, &p.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	if err := json.Unmarshal(tokensJSON, &p.ContextTokens); err != nil {
		return nil, fmt.Errorf("decode context tokens: %w", err)
	}
	if err := json.Unmarshal(historyJSON, &p.ConversationHistory); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return &p, nil
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
