package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

var harmThresholds = map[string]genai.HarmBlockThreshold{
	"BLOCK_NONE":             genai.HarmBlockNone,
	"BLOCK_ONLY_HIGH":        genai.HarmBlockOnlyHigh,
	"BLOCK_MEDIUM_AND_ABOVE": genai.HarmBlockMediumAndAbove,
	"BLOCK_LOW_AND_ABOVE":    genai.HarmBlockLowAndAbove,
}

// GeminiClient talks to the Gemini API. It is built once per process and
// shared between requests.
type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConnectorConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, entity.ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SafetySettings = safetySettings(cfg.SafetyThreshold)
	model.SetTemperature(cfg.Temperature)

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (*entity.LLMResponse, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return &entity.LLMResponse{BlockReason: blockReason(blocked)}, nil
		}
		return nil, err
	}

	return geminiToLLMResponse(resp), nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func safetySettings(threshold string) []*genai.SafetySetting {
	t, ok := harmThresholds[threshold]
	if !ok {
		t = genai.HarmBlockNone
	}

	settings := make([]*genai.SafetySetting, 0, len(harmCategories))
	for _, category := range harmCategories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: t,
		})
	}
	return settings
}

func blockReason(blocked *genai.BlockedError) string {
	if blocked.PromptFeedback != nil {
		return fmt.Sprint(blocked.PromptFeedback.BlockReason)
	}
	if blocked.Candidate != nil {
		return fmt.Sprint(blocked.Candidate.FinishReason)
	}
	return "blocked"
}

func geminiToLLMResponse(resp *genai.GenerateContentResponse) *entity.LLMResponse {
	if resp == nil {
		return &entity.LLMResponse{Kind: entity.ResponseUnrecognized}
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
		return &entity.LLMResponse{BlockReason: fmt.Sprint(fb.BlockReason)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return &entity.LLMResponse{Kind: entity.ResponseUnrecognized}
	}

	// Candidate text is the concatenation of its text parts, like the SDK text accessor
	var text strings.Builder
	found := false
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
			found = true
		}
	}
	if !found {
		return &entity.LLMResponse{Kind: entity.ResponseUnrecognized}
	}

	return &entity.LLMResponse{Kind: entity.ResponseDirectText, Text: text.String()}
}
