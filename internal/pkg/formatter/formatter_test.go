package formatter

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *entity.Document {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Document{
		ID:        "doc-1",
		Title:     "Geography notes",
		Content:   "The capital of France is Paris.",
		PageCount: 1,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func sampleQuestions() []*entity.Question {
	return []*entity.Question{
		{
			ID:           "q-1",
			DocumentID:   "doc-1",
			QuestionText: "What is the capital of France?",
			AnswerText:   "Paris.",
			CreatedAt:    time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC),
		},
	}
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		format    entity.ResultFormat
		extension string
	}{
		{entity.FormatMarkdown, ".md"},
		{entity.FormatDOCX, ".docx"},
		{entity.FormatPDF, ".pdf"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			fm, err := f.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.extension, fm.FileExtension())
			assert.NotEmpty(t, fm.ContentType())
		})
	}

	_, err := f.Create("html")
	assert.Error(t, err)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleDocument(), sampleQuestions())
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "# Geography notes")
	assert.Contains(t, text, "### 1. What is the capital of France?")
	assert.Contains(t, text, "Paris.")
	assert.Contains(t, text, "2024-03-01T12:05:00Z")
}

func TestMarkdownFormatterWithoutQuestions(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleDocument(), nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), noQuestionsText)
}

func TestPDFFormatter(t *testing.T) {
	out, err := NewPDFFormatter().Format(sampleDocument(), sampleQuestions())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestDOCXFormatter(t *testing.T) {
	out, err := NewDOCXFormatter().Format(sampleDocument(), sampleQuestions())
	if err != nil {
		// metered unioffice builds refuse to save without a license key
		t.Skipf("docx rendering unavailable: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "word/document.xml")
}
