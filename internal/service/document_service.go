package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/repository"
)

// DocumentIngester is the indexing contract the document service depends on.
type DocumentIngester interface {
	Ingest(ctx context.Context, documents []model.Document) (int, error)
}

// UploadedFile is one file from a multipart ingestion request.
type UploadedFile struct {
	Name string
	Data []byte
}

// DocumentService handles reference-text ingestion, both as JSON documents
// and as uploaded files.
type DocumentService struct {
	ingester DocumentIngester
	docs     repository.DocumentRepository
}

func NewDocumentService(ingester DocumentIngester, docs repository.DocumentRepository) *DocumentService {
	return &DocumentService{ingester: ingester, docs: docs}
}

// IngestDocuments validates, embeds and durably stores the given documents.
// Documents without an id get a generated one.
func (s *DocumentService) IngestDocuments(ctx context.Context, documents []model.Document) (int, error) {
	if len(documents) == 0 {
		return 0, fmt.Errorf("%w: documents list is empty", app_errors.ErrValidation)
	}
	for i := range documents {
		if strings.TrimSpace(documents[i].Text) == "" {
			return 0, fmt.Errorf("%w: document %d has no text", app_errors.ErrValidation, i)
		}
		if documents[i].ID == "" {
			documents[i].ID = uuid.NewString()
		}
	}
	return s.ingester.Ingest(ctx, documents)
}

// IngestFiles ingests uploaded files as UTF-8 text documents keyed by
// filename. Invalid byte sequences are dropped rather than rejected.
func (s *DocumentService) IngestFiles(ctx context.Context, files []UploadedFile) (int, error) {
	if len(files) == 0 {
		return 0, fmt.Errorf("%w: no files provided", app_errors.ErrValidation)
	}
	documents := make([]model.Document, 0, len(files))
	for _, f := range files {
		text := strings.ToValidUTF8(string(f.Data), "")
		if strings.TrimSpace(text) == "" {
			return 0, fmt.Errorf("%w: file %q has no readable text", app_errors.ErrValidation, f.Name)
		}
		documents = append(documents, model.Document{
			ID:       f.Name,
			Text:     text,
			Metadata: []byte(fmt.Sprintf(`{"filename":%q,"type":"text"}`, f.Name)),
		})
	}
	return s.ingester.Ingest(ctx, documents)
}

// CountDocuments reports the size of the document store, used by the health
// endpoint.
func (s *DocumentService) CountDocuments(ctx context.Context) (int, error) {
	return s.docs.CountDocuments(ctx)
}
