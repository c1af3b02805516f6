package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shamba-ai/backend/internal/analytics"
	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/prompt"
	"shamba-ai/backend/internal/retriever"
)

const defaultK = 4
const titleLimit = 50

// ContextRetriever is the similarity-search contract the pipeline depends on.
type ContextRetriever interface {
	Retrieve(ctx context.Context, question string, k int) ([]model.RetrievedContext, error)
}

// QueryRequest is one question against the knowledge base.
type QueryRequest struct {
	Question       string
	K              int
	UserID         string
	ConversationID string
}

// QueryResult is the answer together with the grounding contexts (always the
// original retrieved text, never the sanitized form) and addressing
// information for the persisted turn.
type QueryResult struct {
	Answer         string
	Contexts       []model.RetrievedContext
	ConversationID string
	MessageID      string
	AttemptTier    string
}

// QueryService composes the answer pipeline: resolve the conversation,
// retrieve context, assemble the prompt block, run the generation ladder and
// persist the turn.
type QueryService struct {
	retriever     ContextRetriever
	assembler     *prompt.Assembler
	orchestrator  *Orchestrator
	conversations *ConversationService
	collector     *analytics.Collector
}

func NewQueryService(
	ret ContextRetriever,
	assembler *prompt.Assembler,
	orchestrator *Orchestrator,
	conversations *ConversationService,
	collector *analytics.Collector,
) *QueryService {
	return &QueryService{
		retriever:     ret,
		assembler:     assembler,
		orchestrator:  orchestrator,
		conversations: conversations,
		collector:     collector,
	}
}

// Answer runs one question through the pipeline. Within a conversation the
// user message is always appended before its assistant message; on a hard
// generation failure only the user message is persisted.
func (s *QueryService) Answer(ctx context.Context, req *QueryRequest) (*QueryResult, error) {
	if req.Question == "" {
		return nil, fmt.Errorf("%w: question is required", app_errors.ErrValidation)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", app_errors.ErrValidation)
	}
	k := req.K
	if k == 0 {
		k = defaultK
	}
	if k < retriever.MinK || k > retriever.MaxK {
		return nil, fmt.Errorf("%w: k must be between %d and %d", app_errors.ErrValidation, retriever.MinK, retriever.MaxK)
	}

	started := time.Now()
	queryID := uuid.NewString()

	conv, history, err := s.resolveConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	// Bare greetings skip retrieval and generation entirely.
	if prompt.IsGreeting(req.Question) {
		assistant, err := s.persistTurn(ctx, conv.ConversationID, req.Question, prompt.GreetingReply, nil)
		if err != nil {
			return nil, err
		}
		return &QueryResult{
			Answer:         prompt.GreetingReply,
			ConversationID: conv.ConversationID,
			MessageID:      assistant.ID,
			AttemptTier:    "greeting",
		}, nil
	}

	contexts, retrievalMs, err := s.retrieve(ctx, req.Question, k)
	if err != nil {
		return nil, err
	}

	userMsg := &model.Message{Role: model.RoleUser, Content: req.Question}
	if err := s.conversations.AppendMessage(ctx, conv.ConversationID, userMsg); err != nil {
		return nil, fmt.Errorf("could not persist user message: %w", err)
	}

	generationStarted := time.Now()
	result, err := s.orchestrator.Generate(ctx, &GenerationInput{
		Question:     req.Question,
		ContextBlock: s.assembler.Assemble(contexts),
		History:      history,
	})
	if err != nil {
		s.record(queryID, req, conv.ConversationID, contexts, retrievalMs, generationStarted, started, "", "", err)
		return nil, err
	}

	assistantMsg := &model.Message{
		Role:     model.RoleAssistant,
		Content:  result.Answer,
		Contexts: contexts,
	}
	if err := s.conversations.AppendMessage(ctx, conv.ConversationID, assistantMsg); err != nil {
		return nil, fmt.Errorf("could not persist assistant message: %w", err)
	}

	s.record(queryID, req, conv.ConversationID, contexts, retrievalMs, generationStarted, started, result.Answer, result.Tier.String(), nil)

	return &QueryResult{
		Answer:         result.Answer,
		Contexts:       contexts,
		ConversationID: conv.ConversationID,
		MessageID:      assistantMsg.ID,
		AttemptTier:    result.Tier.String(),
	}, nil
}

func (s *QueryService) resolveConversation(ctx context.Context, req *QueryRequest) (*model.Conversation, []model.Message, error) {
	if req.ConversationID == "" {
		conv, err := s.conversations.Create(ctx, req.UserID, truncateTitle(req.Question), nil)
		if err != nil {
			return nil, nil, err
		}
		return conv, nil, nil
	}

	conv, err := s.conversations.Get(ctx, req.ConversationID)
	if err != nil {
		return nil, nil, err
	}
	return conv, conv.Messages, nil
}

// retrieve degrades gracefully: when the embedding provider or index is
// unreachable the pipeline continues with no context rather than failing the
// whole request, and the generation ladder starts at its no-context tier.
func (s *QueryService) retrieve(ctx context.Context, question string, k int) ([]model.RetrievedContext, float64, error) {
	started := time.Now()
	contexts, err := s.retriever.Retrieve(ctx, question, k)
	elapsed := float64(time.Since(started).Milliseconds())
	if err != nil {
		if errors.Is(err, app_errors.ErrRetrievalUnavailable) {
			slog.Warn("Retrieval unavailable, answering without grounding context", "error", err)
			return nil, elapsed, nil
		}
		return nil, elapsed, err
	}
	return contexts, elapsed, nil
}

// persistTurn appends a user/assistant pair and returns the assistant message.
func (s *QueryService) persistTurn(ctx context.Context, conversationID, question, answer string, contexts []model.RetrievedContext) (*model.Message, error) {
	userMsg := &model.Message{Role: model.RoleUser, Content: question}
	if err := s.conversations.AppendMessage(ctx, conversationID, userMsg); err != nil {
		return nil, fmt.Errorf("could not persist user message: %w", err)
	}
	assistantMsg := &model.Message{Role: model.RoleAssistant, Content: answer, Contexts: contexts}
	if err := s.conversations.AppendMessage(ctx, conversationID, assistantMsg); err != nil {
		return nil, fmt.Errorf("could not persist assistant message: %w", err)
	}
	return assistantMsg, nil
}

func (s *QueryService) record(queryID string, req *QueryRequest, conversationID string,
	contexts []model.RetrievedContext, retrievalMs float64, generationStarted, started time.Time,
	answer, tier string, genErr error) {
	if s.collector == nil {
		return
	}
	scores := make([]float64, len(contexts))
	for i, c := range contexts {
		scores[i] = c.Score
	}
	m := analytics.QueryMetrics{
		QueryID:          queryID,
		UserID:           req.UserID,
		QueryText:        req.Question,
		ResponseTimeMs:   float64(time.Since(started).Milliseconds()),
		RetrievalTimeMs:  retrievalMs,
		GenerationTimeMs: float64(time.Since(generationStarted).Milliseconds()),
		ContextCount:     len(contexts),
		ContextScores:    scores,
		ResponseLength:   len(answer),
		Success:          genErr == nil,
		AttemptTier:      tier,
		ConversationID:   conversationID,
	}
	if genErr != nil {
		m.ErrorMessage = genErr.Error()
	}
	if err := s.collector.Record(m); err != nil {
		slog.Warn("Failed to record query metrics", "error", err)
	}
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= titleLimit {
		return s
	}
	return string(runes[:titleLimit])
}
