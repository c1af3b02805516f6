package model

import (
	"encoding/json"
	"time"
)

// Document is a unit of reference text ingested into the vector index.
// Re-ingesting the same ID overwrites the previous version.
type Document struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// RetrievedContext is a single passage returned by a similarity search.
// It is transient: it only survives as part of the assistant message it
// grounded, where Text is always the original (unsanitized) passage.
type RetrievedContext struct {
	Score    float64         `json:"score"`
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// Message is a single turn in a conversation. Immutable once appended.
// Contexts is only set on assistant messages that used retrieval.
type Message struct {
	ID        string             `json:"id"`
	Role      string             `json:"role"`
	Content   string             `json:"content"`
	Timestamp time.Time          `json:"timestamp"`
	Contexts  []RetrievedContext `json:"contexts,omitempty"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is an append-only message log owned by exactly one user.
type Conversation struct {
	ConversationID string          `json:"conversation_id"`
	UserID         string          `json:"user_id"`
	Title          string          `json:"title,omitempty"`
	Messages       []Message       `json:"messages"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
}

// ConversationSummary is a lightweight listing projection. MessageCount and
// LastMessage are computed from the message log, never stored.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title,omitempty"`
	MessageCount   int       `json:"message_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	LastMessage    string    `json:"last_message,omitempty"`
}
