package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaEmbedder_Embed(t *testing.T) {
	t.Run("posts model and prompt, returns the vector", func(t *testing.T) {
		var got embeddingRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/embeddings", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			json.NewEncoder(w).Encode(embeddingResponse{Embedding: []float32{0.1, 0.2, 0.3}})
		}))
		defer server.Close()

		embedder := NewOllamaEmbedder(server.URL, "nomic-embed-text")
		vec, err := embedder.Embed(context.Background(), "maize planting depth")
		require.NoError(t, err)

		assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
		assert.Equal(t, "nomic-embed-text", got.Model)
		assert.Equal(t, "maize planting depth", got.Prompt)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		embedder := NewOllamaEmbedder(server.URL, "missing-model")
		_, err := embedder.Embed(context.Background(), "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("empty vector is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(embeddingResponse{})
		}))
		defer server.Close()

		embedder := NewOllamaEmbedder(server.URL, "nomic-embed-text")
		_, err := embedder.Embed(context.Background(), "text")
		assert.Error(t, err)
	})

	t.Run("unreachable server is an error", func(t *testing.T) {
		embedder := NewOllamaEmbedder("http://127.0.0.1:1", "nomic-embed-text")
		_, err := embedder.Embed(context.Background(), "text")
		assert.Error(t, err)
	})
}
