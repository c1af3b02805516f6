package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	app_errors "shamba-ai/backend/internal/errors"
	"shamba-ai/backend/internal/llm"
	"shamba-ai/backend/internal/model"
	"shamba-ai/backend/internal/prompt"
)

// AttemptTier identifies which rung of the safety-retry ladder produced an
// answer. The ladder degrades the prompt step by step to get a best-effort
// answer out of a model that may refuse on content-policy grounds.
type AttemptTier int

const (
	// TierFull sends the full framing: conversation history, sanitized
	// context block and the question, with quality-leaning parameters.
	TierFull AttemptTier = iota
	// TierNoContext drops the retrieved context entirely; unconstrained
	// context is the most common refusal trigger, and a shorter, more
	// deterministic request is less likely to be refused.
	TierNoContext
	// TierMinimal is the last resort: no context, maximum determinism,
	// minimum output budget and the narrowest permissiveness configuration.
	TierMinimal
	// TierFailed means every attempt was refused and the fixed fallback
	// answer was returned.
	TierFailed
)

func (t AttemptTier) String() string {
	switch t {
	case TierFull:
		return "full"
	case TierNoContext:
		return "no_context"
	case TierMinimal:
		return "minimal"
	case TierFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FallbackAnswer is returned when every generation attempt was refused. It is
// an honest failure notice, never a fabricated answer.
const FallbackAnswer = "I'm sorry, I could not provide advice for this question. " +
	"Please try rephrasing it, or ask another maize farming question."

// GenerationInput is everything the orchestrator needs to run the ladder for
// one question. An empty ContextBlock (retrieval unavailable, or no documents
// ingested) starts the ladder at the no-context tier.
type GenerationInput struct {
	Question     string
	ContextBlock string
	History      []model.Message
}

// GenerationResult is the terminal state of the ladder. Exhausted is set when
// all attempts were refused and Answer is the fixed fallback.
type GenerationResult struct {
	Answer    string
	Tier      AttemptTier
	Exhausted bool
}

// Orchestrator runs the safety-retry state machine over a Generator. It makes
// at most one call per tier (three in total), so latency and cost per
// question stay bounded.
type Orchestrator struct {
	generator llm.Generator
}

func NewOrchestrator(generator llm.Generator) *Orchestrator {
	return &Orchestrator{generator: generator}
}

type attempt struct {
	tier AttemptTier
	req  llm.GenerateRequest
}

func planAttempts(in *GenerationInput) []attempt {
	noContextPrompt := prompt.BuildNoContextPrompt(in.Question, in.History)

	attempts := make([]attempt, 0, 3)
	if in.ContextBlock != "" {
		attempts = append(attempts, attempt{
			tier: TierFull,
			req: llm.GenerateRequest{
				Prompt:          prompt.BuildFullPrompt(in.Question, in.ContextBlock, in.History),
				Temperature:     0.7,
				MaxOutputTokens: 1024,
				Safety:          llm.SafetyStandard,
			},
		})
	}
	attempts = append(attempts,
		attempt{
			tier: TierNoContext,
			req: llm.GenerateRequest{
				Prompt:          noContextPrompt,
				Temperature:     0.2,
				MaxOutputTokens: 400,
				Safety:          llm.SafetyStandard,
			},
		},
		attempt{
			tier: TierMinimal,
			req: llm.GenerateRequest{
				Prompt:          noContextPrompt,
				Temperature:     0,
				MaxOutputTokens: 256,
				Safety:          llm.SafetyMinimal,
			},
		},
	)
	return attempts
}

// Generate walks the ladder until an attempt succeeds or every tier has been
// refused. A content-policy refusal moves to the next tier; a transport-level
// failure aborts immediately with ErrGenerationUnavailable and is never
// retried here.
func (o *Orchestrator) Generate(ctx context.Context, in *GenerationInput) (*GenerationResult, error) {
	for _, att := range planAttempts(in) {
		resp, err := o.generator.Generate(ctx, &att.req)
		if err != nil {
			return nil, fmt.Errorf("%w: attempt %s: %v", app_errors.ErrGenerationUnavailable, att.tier, err)
		}
		if !resp.Blocked {
			return &GenerationResult{Answer: strings.TrimSpace(resp.Text), Tier: att.tier}, nil
		}
		slog.Warn("Generation attempt refused by content policy",
			"tier", att.tier.String(),
			"category", resp.BlockCategory,
			"severity", resp.BlockSeverity)
	}

	slog.Warn("All generation attempts refused, returning fallback answer")
	return &GenerationResult{Answer: FallbackAnswer, Tier: TierFailed, Exhausted: true}, nil
}
