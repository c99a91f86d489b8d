package document

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/formatter"
	"github.com/futig/docqa-backend/internal/pkg/validator"
	"github.com/futig/docqa-backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const ownerID = "8b0f7f5a-3f4b-4a43-9a7e-6a2a34a1c001"

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, data []byte) (*entity.ExtractedText, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &entity.ExtractedText{Text: f.text, PageCount: 1}, nil
}

func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func newTestUsecase(store *repotest.Store, extractor TextExtractor) *DocumentUsecase {
	return NewUsecase(
		store.Documents(),
		store.Questions(),
		extractor,
		formatter.NewFactory(),
		validator.NewValidator(config.FileUploadConfig{MaxFileSize: 1024}),
		zap.NewNop(),
	)
}

func TestUploadDefaultsTitleToFilename(t *testing.T) {
	store := repotest.NewStore()
	uc := newTestUsecase(store, &fakeExtractor{text: "Paris is the capital of France."})

	doc, err := uc.Upload(t.Context(), &entity.UploadDocumentRequest{
		UserID: ownerID,
		File:   fileHeader(t, "geography notes.pdf", []byte("%PDF-1.4")),
	})
	require.NoError(t, err)

	assert.Equal(t, "geography notes", doc.Title)
	assert.Equal(t, "Paris is the capital of France.", doc.Content)
	assert.Equal(t, ownerID, doc.UserID)
}

func TestUploadKeepsExplicitTitle(t *testing.T) {
	uc := newTestUsecase(repotest.NewStore(), &fakeExtractor{text: "text"})

	doc, err := uc.Upload(t.Context(), &entity.UploadDocumentRequest{
		UserID: ownerID,
		Title:  "  Notes  ",
		File:   fileHeader(t, "a.pdf", []byte("%PDF")),
	})
	require.NoError(t, err)
	assert.Equal(t, "Notes", doc.Title)
}

func TestUploadFailures(t *testing.T) {
	tests := []struct {
		name          string
		file          func(t *testing.T) *multipart.FileHeader
		extractErr    error
		wantErr       error
		wantExtractor bool
	}{
		{
			name:    "missing file",
			file:    func(*testing.T) *multipart.FileHeader { return nil },
			wantErr: entity.ErrMissingFile,
		},
		{
			name:    "too large",
			file:    func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "big.pdf", bytes.Repeat([]byte("x"), 2048)) },
			wantErr: entity.ErrFileTooLarge,
		},
		{
			name:          "extraction error is passed through",
			file:          func(t *testing.T) *multipart.FileHeader { return fileHeader(t, "scan.pdf", []byte("%PDF")) },
			extractErr:    entity.ErrNoExtractableText,
			wantErr:       entity.ErrNoExtractableText,
			wantExtractor: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repotest.NewStore()
			extractor := &fakeExtractor{err: tt.extractErr}
			uc := newTestUsecase(store, extractor)

			_, err := uc.Upload(t.Context(), &entity.UploadDocumentRequest{UserID: ownerID, File: tt.file(t)})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantExtractor, extractor.calls == 1)

			docs, err := uc.List(t.Context(), ownerID, &entity.ListDocumentsRequest{})
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestOwnershipScoping(t *testing.T) {
	store := repotest.NewStore()
	uc := newTestUsecase(store, &fakeExtractor{text: "text"})

	doc, err := uc.Upload(t.Context(), &entity.UploadDocumentRequest{UserID: ownerID, File: fileHeader(t, "a.pdf", []byte("%PDF"))})
	require.NoError(t, err)

	const stranger = "8b0f7f5a-3f4b-4a43-9a7e-6a2a34a1c002"

	_, err = uc.Get(t.Context(), doc.ID, stranger)
	assert.ErrorIs(t, err, entity.ErrDocumentNotFound)

	_, err = uc.UpdateTitle(t.Context(), doc.ID, stranger, &entity.UpdateDocumentRequest{Title: "mine now"})
	assert.ErrorIs(t, err, entity.ErrDocumentNotFound)

	assert.ErrorIs(t, uc.Delete(t.Context(), doc.ID, stranger), entity.ErrDocumentNotFound)

	updated, err := uc.UpdateTitle(t.Context(), doc.ID, ownerID, &entity.UpdateDocumentRequest{Title: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, doc.Content, updated.Content)
	assert.True(t, updated.UpdatedAt.After(doc.UpdatedAt))

	require.NoError(t, uc.Delete(t.Context(), doc.ID, ownerID))
	_, err = uc.Get(t.Context(), doc.ID, ownerID)
	assert.ErrorIs(t, err, entity.ErrDocumentNotFound)
}

func TestListNewestFirst(t *testing.T) {
	uc := newTestUsecase(repotest.NewStore(), &fakeExtractor{text: "text"})

	for _, name := range []string{"first.pdf", "second.pdf", "third.pdf"} {
		_, err := uc.Upload(t.Context(), &entity.UploadDocumentRequest{UserID: ownerID, File: fileHeader(t, name, []byte("%PDF"))})
		require.NoError(t, err)
	}

	docs, err := uc.List(t.Context(), ownerID, &entity.ListDocumentsRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "third", docs[0].Title)
	assert.Equal(t, "second", docs[1].Title)
}

func TestExport(t *testing.T) {
	store := repotest.NewStore()
	uc := newTestUsecase(store, &fakeExtractor{text: "Paris is the capital of France."})

	doc, err := uc.Upload(t.Context(), &entity.UploadDocumentRequest{UserID: ownerID, Title: "Geo notes", File: fileHeader(t, "a.pdf", []byte("%PDF"))})
	require.NoError(t, err)

	for _, q := range []string{"First question?", "Second question?"} {
		_, err := store.Questions().Create(t.Context(), entity.Question{
			ID:           q,
			DocumentID:   doc.ID,
			QuestionText: q,
			AnswerText:   "answer",
		})
		require.NoError(t, err)
	}

	file, err := uc.Export(t.Context(), doc.ID, ownerID, entity.FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "Geo_notes.md", file.Filename)

	text := string(file.Data)
	assert.Less(t, strings.Index(text, "First question?"), strings.Index(text, "Second question?"))

	_, err = uc.Export(t.Context(), doc.ID, ownerID, "html")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
