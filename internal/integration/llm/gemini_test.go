package llm

import (
	"testing"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: "model", Parts: parts}},
		},
	}
}

func TestGeminiToLLMResponse(t *testing.T) {
	t.Run("single text part", func(t *testing.T) {
		got := geminiToLLMResponse(candidate(genai.Text("Paris.")))
		assert.Equal(t, entity.ResponseDirectText, got.Kind)
		assert.Equal(t, "Paris.", got.Text)
	})

	t.Run("several text parts are concatenated", func(t *testing.T) {
		got := geminiToLLMResponse(candidate(genai.Text("Paris is "), genai.Blob{MIMEType: "image/png"}, genai.Text("in France.")))
		assert.Equal(t, entity.ResponseDirectText, got.Kind)
		assert.Equal(t, "Paris is in France.", got.Text)
	})

	t.Run("no candidates", func(t *testing.T) {
		got := geminiToLLMResponse(&genai.GenerateContentResponse{})
		assert.Equal(t, entity.ResponseUnrecognized, got.Kind)
	})

	t.Run("no text parts", func(t *testing.T) {
		got := geminiToLLMResponse(candidate(genai.Blob{MIMEType: "image/png"}))
		assert.Equal(t, entity.ResponseUnrecognized, got.Kind)
	})

	t.Run("prompt blocked", func(t *testing.T) {
		got := geminiToLLMResponse(&genai.GenerateContentResponse{
			PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
		})
		assert.NotEmpty(t, got.BlockReason)
	})
}

func TestBlockReason(t *testing.T) {
	fromPrompt := &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	assert.NotEmpty(t, blockReason(fromPrompt))

	fromCandidate := &genai.BlockedError{Candidate: &genai.Candidate{FinishReason: genai.FinishReasonSafety}}
	assert.NotEmpty(t, blockReason(fromCandidate))

	assert.Equal(t, "blocked", blockReason(&genai.BlockedError{}))
}

func TestSafetySettings(t *testing.T) {
	settings := safetySettings("BLOCK_ONLY_HIGH")
	require.Len(t, settings, 4)
	for _, s := range settings {
		assert.Equal(t, genai.HarmBlockOnlyHigh, s.Threshold)
	}

	for _, s := range safetySettings("unknown") {
		assert.Equal(t, genai.HarmBlockNone, s.Threshold)
	}
}

func TestNewGeminiClientRequiresAPIKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), config.LLMConnectorConfig{Model: "gemini-1.5-flash"})
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)
}
