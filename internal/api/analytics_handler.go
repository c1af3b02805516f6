package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shamba-ai/backend/internal/interfaces"
)

// AnalyticsHandler serves usage reports and answer feedback.
type AnalyticsHandler struct {
	analytics interfaces.AnalyticsService
}

func NewAnalyticsHandler(analytics interfaces.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// FeedbackRequest rates a previously answered query.
type FeedbackRequest struct {
	QueryID string `json:"query_id" validate:"required"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// HandleInsights godoc
// @Summary      Aggregate usage insights
// @Tags         Analytics
// @Produce      json
// @Param        days  query     int  false  "Reporting period in days (default 7)"
// @Success      200   {object}  analytics.Insights
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/analytics/insights [get]
func (h *AnalyticsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 7)
	insights, err := h.analytics.GetInsights(days)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, insights)
}

// HandleUserReport godoc
// @Summary      Per-user usage report
// @Tags         Analytics
// @Produce      json
// @Param        userID  path      string  true   "User id"
// @Param        days    query     int     false  "Reporting period in days (default 30)"
// @Success      200     {object}  analytics.UserReport
// @Failure      500     {object}  ErrorResponse
// @Router       /v1/analytics/users/{userID} [get]
func (h *AnalyticsHandler) HandleUserReport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	days := queryInt(r, "days", 30)
	report, err := h.analytics.GetUserReport(userID, days)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// HandleFeedback godoc
// @Summary      Record answer feedback
// @Tags         Analytics
// @Accept       json
// @Produce      json
// @Param        feedbackRequest  body      FeedbackRequest  true  "Rating for a query"
// @Success      200              {object}  StatusResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      422              {object}  ErrorResponse
// @Router       /v1/feedback [post]
func (h *AnalyticsHandler) HandleFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.analytics.RecordFeedback(req.QueryID, req.Rating); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
