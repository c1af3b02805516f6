// Package retriever adapts the embedding provider and the on-disk document
// store into a similarity-search index for the answer pipeline.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"

	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/llm"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/repository"
)

const (
	// MinK and MaxK bound the retrieval breadth of a single query.
	MinK = 1
	MaxK = 10
)

// Retriever ingests documents and answers nearest-neighbour queries over
// them. Vectors are L2-normalized at ingest time, so the inner product used
// at query time is cosine similarity.
type Retriever struct {
	embedder llm.Embedder
	docs     repository.DocumentRepository
}

func New(embedder llm.Embedder, docs repository.DocumentRepository) *Retriever {
	return &Retriever{embedder: embedder, docs: docs}
}

// Ingest embeds and durably stores the given documents, returning how many
// were persisted. Re-ingesting an id replaces the stored document, so
// rankings stay stable under repeats.
func (r *Retriever) Ingest(ctx context.Context, documents []model.Document) (int, error) {
	count := 0
	for _, doc := range documents {
		vec, err := r.embedder.Embed(ctx, doc.Text)
		if err != nil {
			return count, fmt.Errorf("%w: embedding document %q: %v", app_errors.ErrRetrievalUnavailable, doc.ID, err)
		}
		normalize(vec)
		if err := r.docs.UpsertDocument(ctx, &doc, vec); err != nil {
			return count, fmt.Errorf("storing document %q: %w", doc.ID, err)
		}
		count++
	}
	return count, nil
}

// Retrieve returns at most k passages in descending similarity order. k is
// clamped to [MinK, MaxK]. An embedding failure surfaces as
// ErrRetrievalUnavailable rather than an empty result, so the pipeline can
// disclose degraded grounding instead of silently fabricating an answer.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) ([]model.RetrievedContext, error) {
	if k < MinK {
		k = MinK
	}
	if k > MaxK {
		k = MaxK
	}

	query, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding question: %v", app_errors.ErrRetrievalUnavailable, err)
	}
	normalize(query)

	stored, err := r.docs.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading document index: %v", app_errors.ErrRetrievalUnavailable, err)
	}

	results := make([]model.RetrievedContext, 0, len(stored))
	for _, doc := range stored {
		results = append(results, model.RetrievedContext{
			Score:    dot(query, doc.Embedding),
			ID:       doc.Document.ID,
			Text:     doc.Document.Text,
			Metadata: doc.Document.Metadata,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func normalize(vec []float32) {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm) + 1e-12
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

func dot(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
