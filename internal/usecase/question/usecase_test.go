package question

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/prompt"
	"github.com/futig/docqa-backend/internal/repository/repotest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	ownerID    = "c1a5d3f0-0000-4000-8000-000000000001"
	strangerID = "c1a5d3f0-0000-4000-8000-000000000002"
)

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(_ context.Context, p string) (string, error) {
	g.prompts = append(g.prompts, p)
	return g.answer, g.err
}

func seedDocument(t *testing.T, store *repotest.Store, content string) *entity.Document {
	t.Helper()
	doc, err := store.Documents().Create(t.Context(), entity.Document{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		Title:   "notes",
		Content: content,
	})
	require.NoError(t, err)
	return doc
}

func newTestUsecase(store *repotest.Store, gen AnswerGenerator) *QuestionUsecase {
	return NewUsecase(store.Documents(), store.Questions(), gen, prompt.DefaultMaxLength, zap.NewNop())
}

func TestAskPersistsAnswer(t *testing.T) {
	store := repotest.NewStore()
	doc := seedDocument(t, store, "Paris is the capital of France.")
	gen := &fakeGenerator{answer: "Paris."}

	q, err := newTestUsecase(store, gen).Ask(t.Context(), ownerID, &entity.AskQuestionRequest{
		DocumentID: doc.ID,
		Question:   "  What is the capital of France?  ",
	})
	require.NoError(t, err)

	assert.Equal(t, doc.ID, q.DocumentID)
	assert.Equal(t, "What is the capital of France?", q.QuestionText)
	assert.Equal(t, "Paris.", q.AnswerText)
	assert.Equal(t, 1, store.QuestionCount())

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Paris is the capital of France.")
	assert.Contains(t, gen.prompts[0], "Question: What is the capital of France?")
}

func TestAskTruncatesLongDocuments(t *testing.T) {
	store := repotest.NewStore()
	doc := seedDocument(t, store, strings.Repeat("Sentence number one. ", 5000))
	gen := &fakeGenerator{answer: "ok"}

	uc := NewUsecase(store.Documents(), store.Questions(), gen, 1000, zap.NewNop())
	_, err := uc.Ask(t.Context(), ownerID, &entity.AskQuestionRequest{DocumentID: doc.ID, Question: "q?"})
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	assert.Less(t, len(gen.prompts[0]), 1500)
}

func TestAskFailuresStoreNothing(t *testing.T) {
	store := repotest.NewStore()
	doc := seedDocument(t, store, "Paris is the capital of France.")
	empty, err := store.Documents().Create(t.Context(), entity.Document{ID: "doc-empty", UserID: ownerID, Title: "blank", Content: "  \n"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		userID  string
		req     entity.AskQuestionRequest
		genErr  error
		wantErr error
		noCall  bool
	}{
		{"missing question", ownerID, entity.AskQuestionRequest{DocumentID: doc.ID, Question: "   "}, nil, entity.ErrMissingQuestion, true},
		{"missing document id", ownerID, entity.AskQuestionRequest{Question: "q?"}, nil, entity.ErrDocumentNotFound, true},
		{"foreign document", strangerID, entity.AskQuestionRequest{DocumentID: doc.ID, Question: "q?"}, nil, entity.ErrDocumentNotFound, true},
		{"empty document", ownerID, entity.AskQuestionRequest{DocumentID: empty.ID, Question: "q?"}, nil, entity.ErrEmptyDocument, true},
		{"content blocked", ownerID, entity.AskQuestionRequest{DocumentID: doc.ID, Question: "q?"}, fmt.Errorf("%w: SAFETY", entity.ErrContentBlocked), entity.ErrContentBlocked, false},
		{"generation failed", ownerID, entity.AskQuestionRequest{DocumentID: doc.ID, Question: "q?"}, errors.New("upstream 503"), entity.ErrGenerationFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{answer: "never stored", err: tt.genErr}

			_, err := newTestUsecase(store, gen).Ask(t.Context(), tt.userID, &tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.noCall, len(gen.prompts) == 0)
			assert.Equal(t, 0, store.QuestionCount())
		})
	}
}

func TestAskGenerationFailureKeepsCause(t *testing.T) {
	store := repotest.NewStore()
	doc := seedDocument(t, store, "Some content.")
	cause := errors.New("quota exceeded")

	_, err := newTestUsecase(store, &fakeGenerator{err: cause}).Ask(t.Context(), ownerID, &entity.AskQuestionRequest{DocumentID: doc.ID, Question: "q?"})
	assert.ErrorIs(t, err, entity.ErrGenerationFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, entity.ErrContentBlocked)
}

func TestHistoryIsScopedToOwner(t *testing.T) {
	store := repotest.NewStore()
	doc := seedDocument(t, store, "Paris is the capital of France.")
	uc := newTestUsecase(store, &fakeGenerator{answer: "Paris."})

	q, err := uc.Ask(t.Context(), ownerID, &entity.AskQuestionRequest{DocumentID: doc.ID, Question: "Capital?"})
	require.NoError(t, err)

	listed, err := uc.List(t.Context(), ownerID, doc.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, q.ID, listed[0].ID)

	foreign, err := uc.List(t.Context(), strangerID, "")
	require.NoError(t, err)
	assert.Empty(t, foreign)

	_, err = uc.Get(t.Context(), q.ID, strangerID)
	assert.ErrorIs(t, err, entity.ErrQuestionNotFound)
	assert.ErrorIs(t, uc.Delete(t.Context(), q.ID, strangerID), entity.ErrQuestionNotFound)

	require.NoError(t, uc.Delete(t.Context(), q.ID, ownerID))
	assert.Equal(t, 0, store.QuestionCount())
}
