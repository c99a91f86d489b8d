package llm

import (
	"context"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockClient answers every prompt with a fixed text. Used with ENABLE_MOCKS.
type MockClient struct {
	logger *zap.Logger
}

func NewMockClient(logger *zap.Logger) *MockClient {
	return &MockClient{
		logger: logger,
	}
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (*entity.LLMResponse, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer via LLM", zap.Int("prompt_length", len(prompt)))

	answer := "[MOCK] The answer is based on the provided document content."
	if q := questionFromPrompt(prompt); q != "" {
		answer = "[MOCK] Answer to \"" + q + "\" based on the provided document content."
	}

	return &entity.LLMResponse{
		Kind: entity.ResponseDirectText,
		Text: answer,
	}, nil
}

func questionFromPrompt(prompt string) string {
	const marker = "\nQuestion: "
	i := strings.LastIndex(prompt, marker)
	if i < 0 {
		return ""
	}
	rest := prompt[i+len(marker):]
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
