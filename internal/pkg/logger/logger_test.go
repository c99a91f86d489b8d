package logger

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short", 10))
	assert.Equal(t, "abc...", Preview("abcdef", 3))
	assert.Equal(t, "äöü...", Preview("äöüß", 3))
}

func TestErrorText(t *testing.T) {
	field := ErrorText(errors.New(strings.Repeat("e", 500)))

	assert.Equal(t, "error", field.Key)
	assert.Len(t, field.String, 203)
}

func TestNew(t *testing.T) {
	l, err := New("info")
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = New("loud")
	assert.Error(t, err)
}

func TestAddFieldsAndWithAction(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = AddFields(ctx, zap.String("document_id", "doc-1"))
	ctx = WithAction(ctx, "AskQuestion")
	ctxzap.Info(ctx, "hello")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "doc-1", fields["document_id"])
	assert.Equal(t, "AskQuestion", fields["action"])
}
