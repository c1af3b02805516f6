package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "shamba-ai/backend/internal/errors"
)

// Shared response DTOs and the centralized error-to-status mapping.

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the generic success envelope for mutations that return
// no resource body.
type StatusResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

// respondWithError maps domain sentinel errors to HTTP status codes and
// writes a standard error body. The detailed error is logged; the client gets
// a generic message for anything unexpected.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusUnprocessableEntity
		// Validation messages from the service layer are already
		// user-facing.
		message = err.Error()
	case errors.Is(err, app_errors.ErrPermission):
		statusCode = http.StatusForbidden
		message = "You do not have permission to perform this action."
	default:
		// ErrRetrievalUnavailable, ErrGenerationUnavailable and anything
		// unrecognized all surface as a server error without leaking detail.
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals the payload and writes it with the given status.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
