package llm

import (
	"testing"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMockClientEchoesQuestion(t *testing.T) {
	client := NewMockClient(zap.NewNop())

	resp, err := client.Generate(t.Context(), prompt.Build("Paris is the capital of France.", "What is the capital of France?", 100))
	require.NoError(t, err)
	assert.Equal(t, entity.ResponseDirectText, resp.Kind)
	assert.Contains(t, resp.Text, "What is the capital of France?")
}
