package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `id, user_id, title, content, page_count, created_at, updated_at`

// DocumentRepository defines the interface for document persistence.
// Every read and write is scoped to the owning user.
type DocumentRepository interface {
	Create(ctx context.Context, doc entity.Document) (*entity.Document, error)
	GetByOwner(ctx context.Context, id, userID string) (*entity.Document, error)
	ListByOwner(ctx context.Context, userID string, skip, limit int) ([]*entity.Document, error)
	UpdateTitle(ctx context.Context, id, userID, title string) (*entity.Document, error)
	Delete(ctx context.Context, id, userID string) error
}

var _ DocumentRepository = &DocumentPostgres{}

// DocumentPostgres implements DocumentRepository using PostgreSQL
type DocumentPostgres struct {
	db DBTX
}

func NewDocumentPostgres(db *pgxpool.Pool) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

func (r *DocumentPostgres) Create(ctx context.Context, doc entity.Document) (*entity.Document, error) {
	docID, err := toPgUUID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse document ID: %w", err)
	}

	userID, err := toPgUUID(doc.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO documents (id, user_id, title, content, page_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+documentColumns,
		docID, userID, doc.Title, doc.Content, int32(doc.PageCount),
	)

	result, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	return toEntityDocument(result), nil
}

// GetByOwner returns ErrDocumentNotFound for malformed ids too, so callers
// can not tell a foreign document from a missing one.
func (r *DocumentPostgres) GetByOwner(ctx context.Context, id, userID string) (*entity.Document, error) {
	docID, err := toPgUUID(id)
	if err != nil {
		return nil, entity.ErrDocumentNotFound
	}

	ownerID, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND user_id = $2`,
		docID, ownerID,
	)

	result, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	return toEntityDocument(result), nil
}

func (r *DocumentPostgres) ListByOwner(ctx context.Context, userID string, skip, limit int) ([]*entity.Document, error) {
	ownerID, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		ownerID, int32(limit), int32(skip),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	documents := make([]*entity.Document, 0, limit)
	for rows.Next() {
		result, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		documents = append(documents, toEntityDocument(result))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return documents, nil
}

func (r *DocumentPostgres) UpdateTitle(ctx context.Context, id, userID, title string) (*entity.Document, error) {
	docID, err := toPgUUID(id)
	if err != nil {
		return nil, entity.ErrDocumentNotFound
	}

	ownerID, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE documents
		SET title = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+documentColumns,
		docID, ownerID, title,
	)

	result, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("update document title: %w", err)
	}

	return toEntityDocument(result), nil
}

func (r *DocumentPostgres) Delete(ctx context.Context, id, userID string) error {
	docID, err := toPgUUID(id)
	if err != nil {
		return entity.ErrDocumentNotFound
	}

	ownerID, err := toPgUUID(userID)
	if err != nil {
		return fmt.Errorf("parse user ID: %w", err)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, docID, ownerID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrDocumentNotFound
	}

	return nil
}
