package question

import (
	"context"

	"github.com/futig/docqa-backend/internal/entity"
)

type QuestionUsecase interface {
	Ask(ctx context.Context, userID string, req *entity.AskQuestionRequest) (*entity.Question, error)
	List(ctx context.Context, userID, documentID string) ([]*entity.Question, error)
	Get(ctx context.Context, id, userID string) (*entity.Question, error)
	Delete(ctx context.Context, id, userID string) error
}
