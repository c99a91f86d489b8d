package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const questionColumns = `q.id, q.document_id, q.question_text, q.answer_text, q.created_at`

// QuestionRepository defines the interface for Q&A record persistence.
// Ownership is resolved through the parent document.
type QuestionRepository interface {
	Create(ctx context.Context, question entity.Question) (*entity.Question, error)
	GetByOwner(ctx context.Context, id, userID string) (*entity.Question, error)
	ListByOwner(ctx context.Context, userID, documentID string) ([]*entity.Question, error)
	Delete(ctx context.Context, id, userID string) error
}

var _ QuestionRepository = &QuestionPostgres{}

// QuestionPostgres implements QuestionRepository using PostgreSQL
type QuestionPostgres struct {
	db DBTX
}

func NewQuestionPostgres(db *pgxpool.Pool) *QuestionPostgres {
	return &QuestionPostgres{db: db}
}

// Create inserts the question together with its answer in one statement.
func (r *QuestionPostgres) Create(ctx context.Context, question entity.Question) (*entity.Question, error) {
	questionID, err := toPgUUID(question.ID)
	if err != nil {
		return nil, fmt.Errorf("parse question ID: %w", err)
	}

	docID, err := toPgUUID(question.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("parse document ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO questions AS q (id, document_id, question_text, answer_text)
		VALUES ($1, $2, $3, $4)
		RETURNING `+questionColumns,
		questionID, docID, question.QuestionText, question.AnswerText,
	)

	result, err := scanQuestion(row)
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	return toEntityQuestion(result), nil
}

func (r *QuestionPostgres) GetByOwner(ctx context.Context, id, userID string) (*entity.Question, error) {
	questionID, err := toPgUUID(id)
	if err != nil {
		return nil, entity.ErrQuestionNotFound
	}

	ownerID, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+questionColumns+`
		FROM questions q
		JOIN documents d ON d.id = q.document_id
		WHERE q.id = $1 AND d.user_id = $2`,
		questionID, ownerID,
	)

	result, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return toEntityQuestion(result), nil
}

// ListByOwner returns the user's Q&A records, newest first. An empty
// documentID lists records of all the user's documents.
func (r *QuestionPostgres) ListByOwner(ctx context.Context, userID, documentID string) ([]*entity.Question, error) {
	ownerID, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	var docFilter pgtype.UUID
	if documentID != "" {
		docFilter, err = toPgUUID(documentID)
		if err != nil {
			return []*entity.Question{}, nil
		}
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+questionColumns+`
		FROM questions q
		JOIN documents d ON d.id = q.document_id
		WHERE d.user_id = $1 AND ($2::uuid IS NULL OR q.document_id = $2)
		ORDER BY q.created_at DESC`,
		ownerID, docFilter,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*entity.Question, 0)
	for rows.Next() {
		result, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, toEntityQuestion(result))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	return questions, nil
}

func (r *QuestionPostgres) Delete(ctx context.Context, id, userID string) error {
	questionID, err := toPgUUID(id)
	if err != nil {
		return entity.ErrQuestionNotFound
	}

	ownerID, err := toPgUUID(userID)
	if err != nil {
		return fmt.Errorf("parse user ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		DELETE FROM questions q
		USING documents d
		WHERE q.id = $1 AND d.id = q.document_id AND d.user_id = $2`,
		questionID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrQuestionNotFound
	}

	return nil
}
