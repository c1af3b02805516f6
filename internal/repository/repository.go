package repository

import (
	"context"
	"encoding/json"

	"shamba-ai/backend/internal/model"
)

// ConversationRepository defines the storage contract for conversations and
// their append-only message logs. All returned values are freshly scanned
// copies; callers never share memory with the store.
type ConversationRepository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	ListConversations(ctx context.Context, userID string, limit, offset int) ([]model.ConversationSummary, error)
	UpdateConversation(ctx context.Context, conversationID string, title *string, metadata json.RawMessage) error
	DeleteConversation(ctx context.Context, conversationID string) error

	// AddMessage appends a message and bumps the conversation's updated_at in
	// a single transaction.
	AddMessage(ctx context.Context, conversationID string, msg *model.Message) error
}

// StoredDocument is a document row together with its embedding vector.
type StoredDocument struct {
	Document  model.Document
	Embedding []float32
}

// DocumentRepository defines the storage contract for the document store and
// vector index. Upserting an existing id replaces text, metadata and vector.
type DocumentRepository interface {
	UpsertDocument(ctx context.Context, doc *model.Document, embedding []float32) error
	ListDocuments(ctx context.Context) ([]StoredDocument, error)
	CountDocuments(ctx context.Context) (int, error)
}
