package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	pkgRetry "github.com/futig/docqa-backend/internal/pkg/retry"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAITestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewOpenAIClient(config.LLMConnectorConfig{
		APIKey:  "test-key",
		Model:   openai.GPT4oMini,
		BaseURL: srv.URL + "/v1",
	}, srv.Client())
	require.NoError(t, err)
	return client
}

func writeCompletion(t *testing.T, w http.ResponseWriter, choice openai.ChatCompletionChoice) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
		ID:      "chatcmpl-1",
		Object:  "chat.completion",
		Model:   openai.GPT4oMini,
		Choices: []openai.ChatCompletionChoice{choice},
	}))
}

func TestOpenAIGenerate(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "What is the capital of France?", req.Messages[0].Content)

		writeCompletion(t, w, openai.ChatCompletionChoice{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "Paris."},
			FinishReason: openai.FinishReasonStop,
		})
	})

	resp, err := client.Generate(t.Context(), "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, entity.ResponseDirectText, resp.Kind)
	assert.Equal(t, "Paris.", resp.Text)
}

func TestOpenAIGenerateContentFilter(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(t, w, openai.ChatCompletionChoice{
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant},
			FinishReason: openai.FinishReasonContentFilter,
		})
	})

	resp, err := client.Generate(t.Context(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "content_filter", resp.BlockReason)
}

func TestOpenAIGenerateServerError(t *testing.T) {
	client := newOpenAITestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	})

	_, err := client.Generate(t.Context(), "prompt")
	require.Error(t, err)
	assert.Equal(t, pkgRetry.Retryable, Classify(err))
}

func TestOpenAIToLLMResponse(t *testing.T) {
	t.Run("no choices", func(t *testing.T) {
		got := openAIToLLMResponse(openai.ChatCompletionResponse{})
		assert.Equal(t, entity.ResponseUnrecognized, got.Kind)
	})

	t.Run("multi content parts", func(t *testing.T) {
		got := openAIToLLMResponse(openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: "Paris"},
				{Type: openai.ChatMessagePartTypeImageURL},
				{Type: openai.ChatMessagePartTypeText, Text: "France"},
			}},
		}}})
		assert.Equal(t, entity.ResponsePartsList, got.Kind)
		assert.Equal(t, []string{"Paris", "France"}, got.Parts)
	})

	t.Run("empty message", func(t *testing.T) {
		got := openAIToLLMResponse(openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{}}})
		_, err := extractAnswer(got)
		assert.ErrorIs(t, err, entity.ErrEmptyResponse)
	})
}

func TestNewOpenAIClientRequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIClient(config.LLMConnectorConfig{}, nil)
	assert.ErrorIs(t, err, entity.ErrMissingAPIKey)
}
