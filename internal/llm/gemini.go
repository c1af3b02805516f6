package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// SafetyPreset selects the permissiveness configuration sent to the
// generative service.
type SafetyPreset int

const (
	// SafetyStandard blocks medium-and-above content in every category.
	SafetyStandard SafetyPreset = iota
	// SafetyMinimal is the narrowest enforcement the service allows: only
	// high-probability dangerous content is still blocked.
	SafetyMinimal
)

// GenerateRequest is a single blocking generation call.
type GenerateRequest struct {
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
	Safety          SafetyPreset
}

// GenerateResponse carries either generated text or an explicit refusal.
// A refusal (Blocked) is a normal response, not an error; transport-level
// failures are returned as errors instead.
type GenerateResponse struct {
	Text          string
	Blocked       bool
	BlockCategory string
	BlockSeverity string
}

// Generator is the boundary to the generative model service.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Generator backed by the Gemini API.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create gemini client: %w", err)
	}
	return &geminiGenerator{client: client, model: model}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: req.MaxOutputTokens,
		SafetySettings:  safetySettings(req.Safety),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content request failed: %w", err)
	}
	return interpretResponse(resp)
}

func safetySettings(preset SafetyPreset) []*genai.SafetySetting {
	if preset == SafetyMinimal {
		return []*genai.SafetySetting{
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
		}
	}
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	}
}

// interpretResponse maps the raw API response to a GenerateResponse. Only an
// explicit safety signal (prompt block reason or safety finish reason) counts
// as a refusal; an empty or malformed response is a transport failure, so real
// outages are never mistaken for content blocks.
func interpretResponse(resp *genai.GenerateContentResponse) (*GenerateResponse, error) {
	if resp == nil {
		return nil, fmt.Errorf("empty response from generative service")
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason == genai.BlockedReasonSafety {
		category, severity := worstRating(resp.PromptFeedback.SafetyRatings)
		return &GenerateResponse{Blocked: true, BlockCategory: category, BlockSeverity: severity}, nil
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("generative service returned no candidates")
	}
	cand := resp.Candidates[0]

	if cand.FinishReason == genai.FinishReasonSafety || cand.FinishReason == genai.FinishReasonProhibitedContent {
		category, severity := worstRating(cand.SafetyRatings)
		return &GenerateResponse{Blocked: true, BlockCategory: category, BlockSeverity: severity}, nil
	}

	text := candidateText(cand)
	if text == "" {
		return nil, fmt.Errorf("generative service returned an empty completion (finish reason %q)", cand.FinishReason)
	}
	return &GenerateResponse{Text: text}, nil
}

func candidateText(cand *genai.Candidate) string {
	if cand.Content == nil {
		return ""
	}
	var text string
	for _, part := range cand.Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}

// worstRating picks the rating that triggered the block, falling back to the
// first reported rating when the service does not flag one explicitly.
func worstRating(ratings []*genai.SafetyRating) (category, severity string) {
	for _, r := range ratings {
		if r != nil && r.Blocked {
			return string(r.Category), string(r.Probability)
		}
	}
	for _, r := range ratings {
		if r != nil {
			return string(r.Category), string(r.Probability)
		}
	}
	return "", ""
}
