package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/llm"
)

// scriptedGenerator plays back one response (or error) per call, recording the
// requests it saw.
type scriptedGenerator struct {
	responses []*llm.GenerateResponse
	errs      []error
	requests  []llm.GenerateRequest
}

func (g *scriptedGenerator) Generate(_ context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	i := len(g.requests)
	g.requests = append(g.requests, *req)
	if i < len(g.errs) && g.errs[i] != nil {
		return nil, g.errs[i]
	}
	return g.responses[i], nil
}

func blocked() *llm.GenerateResponse {
	return &llm.GenerateResponse{Blocked: true, BlockCategory: "HARM_CATEGORY_DANGEROUS_CONTENT", BlockSeverity: "MEDIUM"}
}

func answered(text string) *llm.GenerateResponse {
	return &llm.GenerateResponse{Text: text}
}

func TestOrchestrator_Generate(t *testing.T) {
	in := &GenerationInput{
		Question:     "How do I control armyworm?",
		ContextBlock: "Source 1 (doc1):\nScout fields weekly.",
	}

	t.Run("first attempt succeeds", func(t *testing.T) {
		gen := &scriptedGenerator{responses: []*llm.GenerateResponse{answered("Scout weekly and spray early.")}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, "Scout weekly and spray early.", res.Answer)
		assert.Equal(t, TierFull, res.Tier)
		assert.False(t, res.Exhausted)
		assert.Len(t, gen.requests, 1)
	})

	t.Run("refusals walk the ladder down to minimal", func(t *testing.T) {
		gen := &scriptedGenerator{responses: []*llm.GenerateResponse{blocked(), blocked(), answered("Use recommended products.")}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, TierMinimal, res.Tier)
		assert.Equal(t, "Use recommended products.", res.Answer)
		assert.False(t, res.Exhausted)
		require.Len(t, gen.requests, 3)

		assert.Equal(t, llm.SafetyStandard, gen.requests[0].Safety)
		assert.Equal(t, llm.SafetyStandard, gen.requests[1].Safety)
		assert.Equal(t, llm.SafetyMinimal, gen.requests[2].Safety)
		assert.Equal(t, float32(0), gen.requests[2].Temperature)
		assert.NotContains(t, gen.requests[1].Prompt, "Sources:")
	})

	t.Run("all tiers refused returns the fallback", func(t *testing.T) {
		gen := &scriptedGenerator{responses: []*llm.GenerateResponse{blocked(), blocked(), blocked()}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, FallbackAnswer, res.Answer)
		assert.Equal(t, TierFailed, res.Tier)
		assert.True(t, res.Exhausted)
		assert.Len(t, gen.requests, 3)
	})

	t.Run("transport failure aborts without further attempts", func(t *testing.T) {
		gen := &scriptedGenerator{errs: []error{errors.New("dial tcp: connection refused")}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), in)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, app_errors.ErrGenerationUnavailable)
		assert.Len(t, gen.requests, 1)
	})

	t.Run("transport failure mid-ladder aborts", func(t *testing.T) {
		gen := &scriptedGenerator{
			responses: []*llm.GenerateResponse{blocked(), nil},
			errs:      []error{nil, errors.New("timeout")},
		}
		o := NewOrchestrator(gen)

		_, err := o.Generate(context.Background(), in)
		assert.ErrorIs(t, err, app_errors.ErrGenerationUnavailable)
		assert.Len(t, gen.requests, 2)
	})

	t.Run("empty context block skips the full tier", func(t *testing.T) {
		gen := &scriptedGenerator{responses: []*llm.GenerateResponse{answered("General advice.")}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), &GenerationInput{Question: "How do I store maize?"})
		require.NoError(t, err)

		assert.Equal(t, TierNoContext, res.Tier)
		assert.Len(t, gen.requests, 1)
		assert.NotContains(t, gen.requests[0].Prompt, "Sources:")
	})

	t.Run("empty context block caps the ladder at two attempts", func(t *testing.T) {
		gen := &scriptedGenerator{responses: []*llm.GenerateResponse{blocked(), blocked()}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), &GenerationInput{Question: "How do I store maize?"})
		require.NoError(t, err)

		assert.True(t, res.Exhausted)
		assert.Len(t, gen.requests, 2)
	})

	t.Run("answer text is trimmed", func(t *testing.T) {
		gen := &scriptedGenerator{responses: []*llm.GenerateResponse{answered("  padded  \n")}}
		o := NewOrchestrator(gen)

		res, err := o.Generate(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "padded", res.Answer)
	})
}
