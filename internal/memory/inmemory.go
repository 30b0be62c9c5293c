package memory

import (
	"context"
	"sync"

	"github.com/antoniostano/amara/internal/profile"
)

// InMemoryStore is a simple in-process profile store for local/dev use.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*profile.UserProfile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*profile.UserProfile)}
}

func (s *InMemoryStore) Find(_ context.Context, userID string) (*profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProfile(p), nil
}

func (s *InMemoryStore) RecordTurn(_ context.Context, userID string, update TurnUpdate) (*profile.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		p = &profile.UserProfile{UserID: userID, Mood: "neutral"}
		s.profiles[userID] = p
	}
	p.Username = update.Username
	p.Mood = update.Mood
	p.LastBotResponse = update.LastBotResponse
	p.LastActive = update.LastActive
	p.ConversationHistory = append(p.ConversationHistory, update.Turn)
	if update.Preferences != nil {
		p.Preferences = clonePreferences(update.Preferences)
	}
	p.ContextTokens = unionTokens(p.ContextTokens, update.Entities)
	return cloneProfile(p), nil
}

func (s *InMemoryStore) ReplaceHistory(_ context.Context, userID string, history []profile.ConversationTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.ConversationHistory = append([]profile.ConversationTurn(nil), history...)
	return nil
}

func (s *InMemoryStore) Close() error { return nil }

func cloneProfile(p *profile.UserProfile) *profile.UserProfile {
	out := *p
	out.Preferences = clonePreferences(p.Preferences)
	out.ContextTokens = append([]string(nil), p.ContextTokens...)
	out.ConversationHistory = append([]profile.ConversationTurn(nil), p.ConversationHistory...)
	return &out
}

func clonePreferences(prefs map[string][]string) map[string][]string {
	if prefs == nil {
		return nil
	}
	out := make(map[string][]string, len(prefs))
	for k, v := range prefs {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// unionTokens appends only tokens not already present, preserving order.
func unionTokens(existing, add []string) []string {
	if len(add) == 0 {
		return existing
	}
	seen := make(map[string]struct{}, len(existing))
	for _, tok := range existing {
		seen[tok] = struct{}{}
	}
	for _, tok := range add {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		existing = append(existing, tok)
	}
	return existing
}
