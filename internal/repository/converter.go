package repository

import (
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type dbUser struct {
	ID           pgtype.UUID
	Username     string
	Email        string
	PasswordHash string
	APIToken     string
	CreatedAt    pgtype.Timestamptz
}

type dbDocument struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	Title     string
	Content   string
	PageCount int32
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type dbQuestion struct {
	ID           pgtype.UUID
	DocumentID   pgtype.UUID
	QuestionText string
	AnswerText   string
	CreatedAt    pgtype.Timestamptz
}

func scanUser(row pgx.Row) (*dbUser, error) {
	var u dbUser
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.APIToken, &u.CreatedAt)
	return &u, err
}

func scanDocument(row pgx.Row) (*dbDocument, error) {
	var d dbDocument
	err := row.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &d.PageCount, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func scanQuestion(row pgx.Row) (*dbQuestion, error) {
	var q dbQuestion
	err := row.Scan(&q.ID, &q.DocumentID, &q.QuestionText, &q.AnswerText, &q.CreatedAt)
	return &q, err
}

func toEntityUser(dbU *dbUser) *entity.User {
	return &entity.User{
		ID:           fromPgUUID(dbU.ID),
		Username:     dbU.Username,
		Email:        dbU.Email,
		PasswordHash: dbU.PasswordHash,
		APIToken:     dbU.APIToken,
		CreatedAt:    dbU.CreatedAt.Time,
	}
}

func toEntityDocument(dbDoc *dbDocument) *entity.Document {
	return &entity.Document{
		ID:        fromPgUUID(dbDoc.ID),
		UserID:    fromPgUUID(dbDoc.UserID),
		Title:     dbDoc.Title,
		Content:   dbDoc.Content,
		PageCount: int(dbDoc.PageCount),
		CreatedAt: dbDoc.CreatedAt.Time,
		UpdatedAt: dbDoc.UpdatedAt.Time,
	}
}

func toEntityQuestion(dbQ *dbQuestion) *entity.Question {
	return &entity.Question{
		ID:           fromPgUUID(dbQ.ID),
		DocumentID:   fromPgUUID(dbQ.DocumentID),
		QuestionText: dbQ.QuestionText,
		AnswerText:   dbQ.AnswerText,
		CreatedAt:    dbQ.CreatedAt.Time,
	}
}
