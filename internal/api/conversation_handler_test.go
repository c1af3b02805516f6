package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shamba-ai/backend/internal/api"
	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/interfaces/mocks"
	"shamba-ai/backend/internal/model"
)

func setupConversationHandler(t *testing.T) (*api.ConversationHandler, *mocks.MockConversationService) {
	mockSvc := mocks.NewMockConversationService(t)
	return api.NewConversationHandler(mockSvc), mockSvc
}

// addChiURLParams simulates how the chi router injects URL parameters into the
// request context; without it chi.URLParam returns an empty string.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestConversationHandler_HandleCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		conv := &model.Conversation{ConversationID: "conv-1", UserID: "farmer-1", Title: "Pests"}
		mockSvc.On("Create", mock.Anything, "farmer-1", "Pests", mock.Anything).Return(conv, nil).Once()

		body := `{"user_id":"farmer-1","title":"Pests"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/conversations", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleCreate(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "conv-1", returned.ConversationID)
	})

	t.Run("Failure - missing user_id", func(t *testing.T) {
		handler, _ := setupConversationHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/conversations", strings.NewReader(`{"title":"x"}`))
		rr := httptest.NewRecorder()
		handler.HandleCreate(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		handler, _ := setupConversationHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/conversations", strings.NewReader(`{`))
		rr := httptest.NewRecorder()
		handler.HandleCreate(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestConversationHandler_HandleList(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		summaries := []model.ConversationSummary{{ConversationID: "conv-1", UserID: "farmer-1", MessageCount: 4}}
		mockSvc.On("List", mock.Anything, "farmer-1", 10, 5).Return(summaries, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations?user_id=farmer-1&limit=10&offset=5", nil)
		rr := httptest.NewRecorder()
		handler.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned []model.ConversationSummary
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, summaries, returned)
	})

	t.Run("Success - empty result is an array, not null", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("List", mock.Anything, "farmer-1", 0, 0).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations?user_id=farmer-1", nil)
		rr := httptest.NewRecorder()
		handler.HandleList(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
	})

	t.Run("Failure - missing user_id maps to 422", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("List", mock.Anything, "", 0, 0).Return(nil, app_errors.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
		rr := httptest.NewRecorder()
		handler.HandleList(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestConversationHandler_HandleGet(t *testing.T) {
	conversationID := "conv-1"

	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		conv := &model.Conversation{
			ConversationID: conversationID,
			UserID:         "farmer-1",
			Messages: []model.Message{
				{ID: "m1", Role: model.RoleUser, Content: "hi", Timestamp: time.Now().UTC()},
			},
		}
		mockSvc.On("Get", mock.Anything, conversationID).Return(conv, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleGet(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned model.Conversation
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Len(t, returned.Messages, 1)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Get", mock.Anything, conversationID).Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleGet(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestConversationHandler_HandleUpdate(t *testing.T) {
	conversationID := "conv-1"

	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Update", mock.Anything, conversationID, mock.MatchedBy(func(title *string) bool {
			return title != nil && *title == "Renamed"
		}), mock.Anything).Return(nil).Once()

		body := `{"title":"Renamed"}`
		req := httptest.NewRequest(http.MethodPatch, "/v1/conversations/"+conversationID, strings.NewReader(body))
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleUpdate(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - empty patch maps to 422", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Update", mock.Anything, conversationID, (*string)(nil), mock.Anything).
			Return(app_errors.ErrValidation).Once()

		req := httptest.NewRequest(http.MethodPatch, "/v1/conversations/"+conversationID, strings.NewReader(`{}`))
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleUpdate(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})
}

func TestConversationHandler_HandleDelete(t *testing.T) {
	conversationID := "conv-1"

	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Delete", mock.Anything, conversationID, "farmer-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/conversations/"+conversationID+"?user_id=farmer-1", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleDelete(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - missing user_id maps to 422", func(t *testing.T) {
		handler, _ := setupConversationHandler(t)

		req := httptest.NewRequest(http.MethodDelete, "/v1/conversations/"+conversationID, nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleDelete(rr, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Failure - another user's conversation maps to 403", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Delete", mock.Anything, conversationID, "farmer-2").Return(app_errors.ErrPermission).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/conversations/"+conversationID+"?user_id=farmer-2", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleDelete(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		handler, mockSvc := setupConversationHandler(t)
		mockSvc.On("Delete", mock.Anything, conversationID, "farmer-1").Return(app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/v1/conversations/"+conversationID+"?user_id=farmer-1", nil)
		req = addChiURLParams(req, map[string]string{"conversationID": conversationID})
		rr := httptest.NewRecorder()
		handler.HandleDelete(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
