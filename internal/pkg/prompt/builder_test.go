package prompt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{
			name:      "short text is unchanged",
			text:      "Paris is the capital of France.",
			maxLength: 100,
			want:      "Paris is the capital of France.",
		},
		{
			name:      "exact length is unchanged",
			text:      "abcde",
			maxLength: 5,
			want:      "abcde",
		},
		{
			name:      "cuts at last period",
			text:      "One. Two. Three four five",
			maxLength: 15,
			want:      "One. Two.",
		},
		{
			name:      "no period keeps raw prefix",
			text:      "abcdefghij",
			maxLength: 4,
			want:      "abcd",
		},
		{
			name:      "period at index zero is ignored",
			text:      ".abcdefghij",
			maxLength: 5,
			want:      ".abcd",
		},
		{
			name:      "counts characters not bytes",
			text:      "Ünïcödé. wörds ärë hérë",
			maxLength: 12,
			want:      "Ünïcödé.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.text, tt.maxLength))
		})
	}
}

func TestTruncateStaysWithinBudget(t *testing.T) {
	text := strings.Repeat("Sentence number one goes here. ", 2000)

	got := Truncate(text, DefaultMaxLength)

	require.LessOrEqual(t, utf8.RuneCountInString(got), DefaultMaxLength)
	assert.True(t, strings.HasPrefix(text, got))
	assert.True(t, strings.HasSuffix(got, "."))
}

func TestBuild(t *testing.T) {
	got := Build("Paris is the capital of France.", "What is the capital of France?", DefaultMaxLength)

	assert.Contains(t, got, "Paris is the capital of France.")
	assert.Contains(t, got, "Question: What is the capital of France?")
	assert.Contains(t, got, "If the answer cannot be found in the document, please state that explicitly.")
	assert.Contains(t, got, "based only on the information in the document")
	assert.Equal(t, got, Build("Paris is the capital of France.", "What is the capital of France?", DefaultMaxLength))
}

func TestBuildTruncatesDocument(t *testing.T) {
	doc := "Kept sentence. " + strings.Repeat("x", 100)

	got := Build(doc, "q?", 20)

	assert.Contains(t, got, "Kept sentence.\n")
	assert.NotContains(t, got, "xxx")
}
