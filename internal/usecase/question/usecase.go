package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/logger"
	"github.com/futig/docqa-backend/internal/pkg/prompt"
	"github.com/futig/docqa-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QuestionUsecase answers questions about stored documents and keeps the Q&A history
type QuestionUsecase struct {
	documentRepo    repository.DocumentRepository
	questionRepo    repository.QuestionRepository
	generator       AnswerGenerator
	maxPromptLength int
	logger          *zap.Logger
}

// NewUsecase creates a new question use case
func NewUsecase(
	documentRepo repository.DocumentRepository,
	questionRepo repository.QuestionRepository,
	generator AnswerGenerator,
	maxPromptLength int,
	logger *zap.Logger,
) *QuestionUsecase {
	return &QuestionUsecase{
		documentRepo:    documentRepo,
		questionRepo:    questionRepo,
		generator:       generator,
		maxPromptLength: maxPromptLength,
		logger:          logger,
	}
}

// Ask validates the question, loads the user's document, generates an answer
// and stores the Q&A record. A record is stored only when an answer exists.
func (uc *QuestionUsecase) Ask(ctx context.Context, userID string, req *entity.AskQuestionRequest) (*entity.Question, error) {
	ctx = logger.WithAction(ctx, "ask_question")
	ctx = logger.AddFields(ctx,
		zap.String("user_id", userID),
		zap.String("document_id", req.DocumentID),
	)

	questionText := strings.TrimSpace(req.Question)
	if questionText == "" {
		return nil, entity.ErrMissingQuestion
	}

	if req.DocumentID == "" {
		return nil, entity.ErrDocumentNotFound
	}

	doc, err := uc.documentRepo.GetByOwner(ctx, req.DocumentID, userID)
	if err != nil {
		if !errors.Is(err, entity.ErrDocumentNotFound) {
			ctxzap.Error(ctx, "failed to load document", logger.ErrorText(err))
		}
		return nil, err
	}

	if strings.TrimSpace(doc.Content) == "" {
		return nil, entity.ErrEmptyDocument
	}

	p := prompt.Build(doc.Content, questionText, uc.maxPromptLength)
	ctxzap.Debug(ctx, "prompt built",
		zap.Int("content_length", len(doc.Content)),
		zap.Int("prompt_length", len(p)),
	)

	answer, err := uc.generator.Generate(ctx, p)
	if err != nil {
		if errors.Is(err, entity.ErrContentBlocked) {
			return nil, err
		}
		ctxzap.Error(ctx, "answer generation failed", logger.ErrorText(err))
		return nil, fmt.Errorf("%w: %w", entity.ErrGenerationFailed, err)
	}

	question, err := uc.questionRepo.Create(ctx, entity.Question{
		ID:           uuid.New().String(),
		DocumentID:   doc.ID,
		QuestionText: questionText,
		AnswerText:   answer,
	})
	if err != nil {
		ctxzap.Error(ctx, "failed to save question", logger.ErrorText(err))
		return nil, fmt.Errorf("create question: %w", err)
	}

	ctxzap.Info(ctx, "question answered",
		zap.String("question_id", question.ID),
		zap.String("answer_preview", logger.Preview(answer, 100)),
	)

	return question, nil
}

// List returns the user's Q&A records, optionally for one document only
func (uc *QuestionUsecase) List(ctx context.Context, userID, documentID string) ([]*entity.Question, error) {
	questions, err := uc.questionRepo.ListByOwner(ctx, userID, documentID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

func (uc *QuestionUsecase) Get(ctx context.Context, id, userID string) (*entity.Question, error) {
	return uc.questionRepo.GetByOwner(ctx, id, userID)
}

func (uc *QuestionUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := uc.questionRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	ctxzap.Info(ctx, "question deleted", zap.String("question_id", id), zap.String("user_id", userID))

	return nil
}
