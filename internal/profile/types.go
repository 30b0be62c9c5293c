// Package profile holds the persisted and transient data model shared by
// the retrieval and storage layers.
package profile

import "time"

// ConversationTurn is one message/response exchange. Turns are immutable
// once created: they are appended to a user's history and only ever
// removed in bulk by retention trimming.
type ConversationTurn struct {
	ID        string    `json:"id,omitempty"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Entities  []string  `json:"entities,omitempty"`
}

// TurnIdentity is the dedup identity of a turn: the (message, timestamp)
// pair. Two stored turns with the same identity are the same turn.
type TurnIdentity struct {
	Message string
	UnixNS  int64
}

// Identity returns the turn's dedup key.
func (t ConversationTurn) Identity() TurnIdentity {
	return TurnIdentity{Message: t.Message, UnixNS: t.Timestamp.UnixNano()}
}

// UserProfile is the per-user document. ContextTokens only grows by set
// union; tokens can therefore outlive the turns they were extracted
// from once retention trims the history. That asymmetry is intentional.
type UserProfile struct {
	UserID              string              `json:"user_id"`
	Username            string              `json:"username"`
	Mood                string              `json:"mood"`
	Preferences         map[string][]string `json:"preferences"`
	ContextTokens       []string            `json:"context_tokens"`
	LastBotResponse     string              `json:"last_bot_response"`
	LastActive          time.Time           `json:"last_active"`
	ConversationHistory []ConversationTurn  `json:"conversation_history"`
}

// UserInfo is the profile slice exposed to prompt building.
type UserInfo struct {
	Username      string              `json:"username"`
	Mood          string              `json:"mood"`
	Preferences   map[string][]string `json:"preferences"`
	ContextTokens []string            `json:"context_tokens"`
	LastActive    time.Time           `json:"last_active"`
}

// RetrievalResult is the transient working context assembled per request.
// It is never persisted.
type RetrievalResult struct {
	UserInfo           UserInfo           `json:"user_info"`
	RecentHistory      []ConversationTurn `json:"recent_history"`
	RelevantHistory    []ConversationTurn `json:"relevant_history"`
	PreviousBotMessage string             `json:"previous_bot_message,omitempty"`
	GlobalTopics       []string           `json:"global_topics,omitempty"`
	BotPersonality     string             `json:"bot_personality"`
}
