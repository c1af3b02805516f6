package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/interfaces"
	"shamba-ai/backend/internal/model"
)

// ConversationHandler serves conversation CRUD.
type ConversationHandler struct {
	conversations interfaces.ConversationService
}

func NewConversationHandler(conversations interfaces.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// CreateConversationRequest is the body for creating a conversation.
type CreateConversationRequest struct {
	UserID   string          `json:"user_id" validate:"required"`
	Title    string          `json:"title" validate:"omitempty,max=100"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// UpdateConversationRequest patches title and/or metadata.
type UpdateConversationRequest struct {
	Title    *string         `json:"title" validate:"omitempty,max=100"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// HandleCreate godoc
// @Summary      Create a conversation
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        createRequest  body      CreateConversationRequest  true  "Owner and optional title"
// @Success      200            {object}  model.Conversation
// @Failure      400            {object}  ErrorResponse
// @Failure      422            {object}  ErrorResponse
// @Router       /v1/conversations [post]
func (h *ConversationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	conv, err := h.conversations.Create(r.Context(), req.UserID, req.Title, req.Metadata)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// HandleList godoc
// @Summary      List conversations for a user
// @Description  Returns summaries ordered by most recent activity.
// @Tags         Conversations
// @Produce      json
// @Param        user_id  query     string  true   "Owner user id"
// @Param        limit    query     int     false  "Page size"
// @Param        offset   query     int     false  "Page offset"
// @Success      200      {array}   model.ConversationSummary
// @Failure      422      {object}  ErrorResponse
// @Router       /v1/conversations [get]
func (h *ConversationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	summaries, err := h.conversations.List(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if summaries == nil {
		summaries = []model.ConversationSummary{}
	}
	respondWithJSON(w, http.StatusOK, summaries)
}

// HandleGet godoc
// @Summary      Get a conversation with its messages
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation id"
// @Success      200             {object}  model.Conversation
// @Failure      404             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [get]
func (h *ConversationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	conv, err := h.conversations.Get(r.Context(), conversationID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conv)
}

// HandleUpdate godoc
// @Summary      Update a conversation's title or metadata
// @Tags         Conversations
// @Accept       json
// @Produce      json
// @Param        conversationID  path      string                     true  "Conversation id"
// @Param        updateRequest   body      UpdateConversationRequest  true  "Fields to patch"
// @Success      200             {object}  StatusResponse
// @Failure      400             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Failure      422             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [patch]
func (h *ConversationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req UpdateConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if err := h.conversations.Update(r.Context(), conversationID, req.Title, req.Metadata); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleDelete godoc
// @Summary      Delete a conversation
// @Description  Only the owning user may delete a conversation.
// @Tags         Conversations
// @Produce      json
// @Param        conversationID  path      string  true  "Conversation id"
// @Param        user_id         query     string  true  "Owner user id"
// @Success      200             {object}  StatusResponse
// @Failure      403             {object}  ErrorResponse
// @Failure      404             {object}  ErrorResponse
// @Failure      422             {object}  ErrorResponse
// @Router       /v1/conversations/{conversationID} [delete]
func (h *ConversationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, fmt.Errorf("%w: user_id query parameter is required", app_errors.ErrValidation))
		return
	}

	if err := h.conversations.Delete(r.Context(), conversationID, userID); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
