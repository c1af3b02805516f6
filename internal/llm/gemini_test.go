package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestInterpretResponse(t *testing.T) {
	t.Run("plain text completion", func(t *testing.T) {
		resp, err := interpretResponse(textResponse("Plant two seeds per hole."))
		require.NoError(t, err)

		assert.Equal(t, "Plant two seeds per hole.", resp.Text)
		assert.False(t, resp.Blocked)
	})

	t.Run("concatenates multiple parts", func(t *testing.T) {
		raw := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: "Plant early. "}, {Text: "Weed twice."}}},
			}},
		}
		resp, err := interpretResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, "Plant early. Weed twice.", resp.Text)
	})

	t.Run("prompt-level safety block is a refusal", func(t *testing.T) {
		raw := &genai.GenerateContentResponse{
			PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
				BlockReason: genai.BlockedReasonSafety,
				SafetyRatings: []*genai.SafetyRating{{
					Category:    genai.HarmCategoryDangerousContent,
					Probability: genai.HarmProbabilityMedium,
					Blocked:     true,
				}},
			},
		}
		resp, err := interpretResponse(raw)
		require.NoError(t, err)

		assert.True(t, resp.Blocked)
		assert.Equal(t, string(genai.HarmCategoryDangerousContent), resp.BlockCategory)
		assert.Equal(t, string(genai.HarmProbabilityMedium), resp.BlockSeverity)
	})

	t.Run("safety finish reason is a refusal", func(t *testing.T) {
		raw := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonSafety,
				SafetyRatings: []*genai.SafetyRating{{
					Category:    genai.HarmCategoryHarassment,
					Probability: genai.HarmProbabilityHigh,
				}},
			}},
		}
		resp, err := interpretResponse(raw)
		require.NoError(t, err)

		assert.True(t, resp.Blocked)
		assert.Equal(t, string(genai.HarmCategoryHarassment), resp.BlockCategory)
	})

	t.Run("prohibited content finish reason is a refusal", func(t *testing.T) {
		raw := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonProhibitedContent}},
		}
		resp, err := interpretResponse(raw)
		require.NoError(t, err)
		assert.True(t, resp.Blocked)
	})

	t.Run("nil response is a transport failure", func(t *testing.T) {
		_, err := interpretResponse(nil)
		assert.Error(t, err)
	})

	t.Run("no candidates is a transport failure", func(t *testing.T) {
		_, err := interpretResponse(&genai.GenerateContentResponse{})
		assert.Error(t, err)
	})

	t.Run("empty completion is a transport failure, not a refusal", func(t *testing.T) {
		raw := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonMaxTokens,
				Content:      &genai.Content{},
			}},
		}
		_, err := interpretResponse(raw)
		assert.Error(t, err)
	})
}

func TestSafetySettings(t *testing.T) {
	t.Run("standard blocks medium and above everywhere", func(t *testing.T) {
		settings := safetySettings(SafetyStandard)
		require.Len(t, settings, 4)
		for _, s := range settings {
			assert.Equal(t, genai.HarmBlockThresholdBlockMediumAndAbove, s.Threshold)
		}
	})

	t.Run("minimal keeps only high dangerous content blocked", func(t *testing.T) {
		settings := safetySettings(SafetyMinimal)
		require.Len(t, settings, 4)
		for _, s := range settings {
			if s.Category == genai.HarmCategoryDangerousContent {
				assert.Equal(t, genai.HarmBlockThresholdBlockOnlyHigh, s.Threshold)
			} else {
				assert.Equal(t, genai.HarmBlockThresholdBlockNone, s.Threshold)
			}
		}
	})
}
