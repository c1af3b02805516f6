package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ConversationService owns the conversation lifecycle: creation, lookup,
// listing, metadata edits, ownership-checked deletion and message appends.
type ConversationService struct {
	repo repository.ConversationRepository

	// appendLocks serializes appends per conversation id so concurrent
	// queries against the same conversation keep their append order and the
	// updated_at bump atomic. Different conversations proceed in parallel.
	appendLocks sync.Map // conversationID -> *sync.Mutex
}

func NewConversationService(repo repository.ConversationRepository) *ConversationService {
	return &ConversationService{repo: repo}
}

// Create starts a new, empty conversation owned by userID.
func (s *ConversationService) Create(ctx context.Context, userID, title string, metadata json.RawMessage) (*model.Conversation, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", app_errors.ErrValidation)
	}
	now := time.Now().UTC()
	conv := &model.Conversation{
		ConversationID: uuid.NewString(),
		UserID:         userID,
		Title:          title,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	return conv, nil
}

// Get returns the conversation with its full message log.
func (s *ConversationService) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return nil, err
	}
	messages, err := s.repo.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	conv.Messages = messages
	return conv, nil
}

// History returns just the message log, oldest first.
func (s *ConversationService) History(ctx context.Context, conversationID string) ([]model.Message, error) {
	return s.repo.GetMessages(ctx, conversationID)
}

// List returns the user's conversation summaries ordered by most recent
// activity.
func (s *ConversationService) List(ctx context.Context, userID string, limit, offset int) ([]model.ConversationSummary, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", app_errors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListConversations(ctx, userID, limit, offset)
}

// Update patches the title and/or metadata of a conversation.
func (s *ConversationService) Update(ctx context.Context, conversationID string, title *string, metadata json.RawMessage) error {
	if title == nil && len(metadata) == 0 {
		return fmt.Errorf("%w: nothing to update", app_errors.ErrValidation)
	}
	err := s.repo.UpdateConversation(ctx, conversationID, title, metadata)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	return err
}

// Delete removes a conversation after verifying the caller owns it.
func (s *ConversationService) Delete(ctx context.Context, conversationID, userID string) error {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
		}
		return err
	}
	if conv.UserID != userID {
		return fmt.Errorf("%w: conversation belongs to another user", app_errors.ErrPermission)
	}
	err = s.repo.DeleteConversation(ctx, conversationID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	return err
}

// AppendMessage appends one message, serialized per conversation id. Fills in
// the message id and timestamp when the caller left them zero.
func (s *ConversationService) AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	lock, _ := s.appendLocks.LoadOrStore(conversationID, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	err := s.repo.AddMessage(ctx, conversationID, msg)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: conversation %s", app_errors.ErrNotFound, conversationID)
	}
	return err
}
