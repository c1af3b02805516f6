package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"shamba-ai/backend/internal/interfaces"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/service"
)

// Version reported by the health endpoint.
const Version = "1.2.0"

const maxUploadBytes = 32 << 20

// QueryHandler serves question answering, document ingestion and health.
type QueryHandler struct {
	queries   interfaces.QueryService
	documents interfaces.DocumentService
}

func NewQueryHandler(queries interfaces.QueryService, documents interfaces.DocumentService) *QueryHandler {
	return &QueryHandler{queries: queries, documents: documents}
}

// QueryRequest is the question-answering request body.
type QueryRequest struct {
	Question       string `json:"question" validate:"required" example:"What pH does maize need?"`
	K              int    `json:"k" validate:"omitempty,gte=1,lte=10"`
	UserID         string `json:"user_id" validate:"required"`
	ConversationID string `json:"conversation_id"`
}

// QueryResponse is the answer plus its grounding and addressing info.
type QueryResponse struct {
	Answer         string                   `json:"answer"`
	Contexts       []model.RetrievedContext `json:"contexts"`
	ConversationID string                   `json:"conversation_id"`
	MessageID      string                   `json:"message_id"`
	AttemptTier    string                   `json:"attempt_tier"`
}

// IngestRequest is the JSON document ingestion body.
type IngestRequest struct {
	Documents []model.Document `json:"documents" validate:"required,min=1"`
}

// HealthResponse reports service status.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HandleQuery godoc
// @Summary      Answer a question
// @Description  Retrieves relevant reference text and generates a grounded answer, persisting the turn in a conversation.
// @Tags         Query
// @Accept       json
// @Produce      json
// @Param        queryRequest  body      QueryRequest  true  "Question"
// @Success      200           {object}  QueryResponse
// @Failure      400           {object}  ErrorResponse
// @Failure      404           {object}  ErrorResponse
// @Failure      422           {object}  ErrorResponse
// @Failure      500           {object}  ErrorResponse
// @Router       /v1/query [post]
func (h *QueryHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	result, err := h.queries.Answer(r.Context(), &service.QueryRequest{
		Question:       req.Question,
		K:              req.K,
		UserID:         req.UserID,
		ConversationID: req.ConversationID,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}

	contexts := result.Contexts
	if contexts == nil {
		contexts = []model.RetrievedContext{}
	}
	respondWithJSON(w, http.StatusOK, QueryResponse{
		Answer:         result.Answer,
		Contexts:       contexts,
		ConversationID: result.ConversationID,
		MessageID:      result.MessageID,
		AttemptTier:    result.AttemptTier,
	})
}

// HandleIngest godoc
// @Summary      Ingest documents
// @Description  Embeds and stores reference documents for later retrieval.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        ingestRequest  body      IngestRequest  true  "Documents"
// @Success      200            {object}  StatusResponse
// @Failure      400            {object}  ErrorResponse
// @Failure      422            {object}  ErrorResponse
// @Failure      500            {object}  ErrorResponse
// @Router       /v1/documents [post]
func (h *QueryHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	count, err := h.documents.IngestDocuments(r.Context(), req.Documents)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Count: count})
}

// HandleIngestFiles godoc
// @Summary      Ingest uploaded files
// @Description  Ingests each uploaded file as a UTF-8 text document keyed by filename.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Files to ingest"
// @Success      200    {object}  StatusResponse
// @Failure      400    {object}  ErrorResponse
// @Failure      422    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /v1/documents/files [post]
func (h *QueryHandler) HandleIngestFiles(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart payload"})
		return
	}

	var files []service.UploadedFile
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file"})
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Could not read uploaded file"})
				return
			}
			files = append(files, service.UploadedFile{Name: header.Filename, Data: data})
		}
	}

	count, err := h.documents.IngestFiles(r.Context(), files)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok", Count: count})
}

// HandleHealth godoc
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /v1/health [get]
func (h *QueryHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{"document_store": "ok"}
	if _, err := h.documents.CountDocuments(r.Context()); err != nil {
		services["document_store"] = "unavailable"
	}
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	})
}
