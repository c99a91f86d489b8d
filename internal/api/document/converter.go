package document

import (
	"time"

	"github.com/futig/docqa-backend/internal/entity"
)

func toDocumentResponse(d *entity.Document, owner *entity.User) *entity.DocumentResponse {
	resp := &entity.DocumentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		PageCount: d.PageCount,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if owner != nil {
		resp.User = &entity.UserSummary{
			ID:       owner.ID,
			Username: owner.Username,
			Email:    owner.Email,
		}
	}
	return resp
}

func toDocumentSummary(d *entity.Document) *entity.DocumentSummary {
	return &entity.DocumentSummary{
		ID:        d.ID,
		Title:     d.Title,
		PageCount: d.PageCount,
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
