package llm

import (
	"context"
	"errors"
	"net/http"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/sashabaranov/go-openai"
)

const contentFilterCode = "content_filter"

// OpenAIClient works with any OpenAI compatible chat completions endpoint.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIClient(cfg config.LLMConnectorConfig, httpClient *http.Client) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, entity.ErrMissingAPIKey
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (*entity.LLMResponse, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		// Some deployments reject filtered prompts with an error instead of a finish reason.
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == contentFilterCode {
			return &entity.LLMResponse{BlockReason: contentFilterCode}, nil
		}
		return nil, err
	}

	return openAIToLLMResponse(resp), nil
}

func openAIToLLMResponse(resp openai.ChatCompletionResponse) *entity.LLMResponse {
	if len(resp.Choices) == 0 {
		return &entity.LLMResponse{Kind: entity.ResponseUnrecognized}
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return &entity.LLMResponse{BlockReason: string(choice.FinishReason)}
	}

	if choice.Message.Content != "" {
		return &entity.LLMResponse{Kind: entity.ResponseDirectText, Text: choice.Message.Content}
	}

	var parts []string
	for _, part := range choice.Message.MultiContent {
		if part.Type == openai.ChatMessagePartTypeText {
			parts = append(parts, part.Text)
		}
	}
	if len(parts) > 0 {
		return &entity.LLMResponse{Kind: entity.ResponsePartsList, Parts: parts}
	}

	// Present but empty, the generator reports it as an empty response.
	return &entity.LLMResponse{Kind: entity.ResponseDirectText}
}
