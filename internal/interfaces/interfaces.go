package interfaces

import (
	"context"
	"encoding/json"

	"shamba-ai/backend/internal/analytics"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/service"
)

// Contracts the API layer depends on. Handlers take these interfaces instead
// of the concrete services so they can be tested with mocks.

// QueryService answers questions through the retrieval + generation pipeline.
type QueryService interface {
	Answer(ctx context.Context, req *service.QueryRequest) (*service.QueryResult, error)
}

// ConversationService manages the per-user conversation logs.
type ConversationService interface {
	Create(ctx context.Context, userID, title string, metadata json.RawMessage) (*model.Conversation, error)
	Get(ctx context.Context, conversationID string) (*model.Conversation, error)
	List(ctx context.Context, userID string, limit, offset int) ([]model.ConversationSummary, error)
	Update(ctx context.Context, conversationID string, title *string, metadata json.RawMessage) error
	Delete(ctx context.Context, conversationID, userID string) error
}

// DocumentService ingests reference documents into the vector index.
type DocumentService interface {
	IngestDocuments(ctx context.Context, documents []model.Document) (int, error)
	IngestFiles(ctx context.Context, files []service.UploadedFile) (int, error)
	CountDocuments(ctx context.Context) (int, error)
}

// AnalyticsService reports usage metrics and accepts answer feedback.
type AnalyticsService interface {
	GetInsights(days int) (*analytics.Insights, error)
	GetUserReport(userID string, days int) (*analytics.UserReport, error)
	RecordFeedback(queryID string, rating int) error
}
