package document

import (
	"context"

	"github.com/futig/docqa-backend/internal/entity"
)

type DocumentUsecase interface {
	Upload(ctx context.Context, req *entity.UploadDocumentRequest) (*entity.Document, error)
	List(ctx context.Context, userID string, req *entity.ListDocumentsRequest) ([]*entity.Document, error)
	Get(ctx context.Context, id, userID string) (*entity.Document, error)
	UpdateTitle(ctx context.Context, id, userID string, req *entity.UpdateDocumentRequest) (*entity.Document, error)
	Delete(ctx context.Context, id, userID string) error
	Export(ctx context.Context, id, userID string, format entity.ResultFormat) (*entity.ExportedFile, error)
}
