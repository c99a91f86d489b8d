package question

import (
	"time"

	"github.com/futig/docqa-backend/internal/entity"
)

func toQuestionResponse(q *entity.Question) *entity.QuestionResponse {
	return &entity.QuestionResponse{
		ID:           q.ID,
		Document:     q.DocumentID,
		QuestionText: q.QuestionText,
		AnswerText:   q.AnswerText,
		CreatedAt:    q.CreatedAt.UTC().Format(time.RFC3339),
	}
}
