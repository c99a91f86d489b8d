package document

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/validator"
	"github.com/futig/docqa-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DocumentUsecase implements document business logic
type DocumentUsecase struct {
	documentRepo repository.DocumentRepository
	questionRepo repository.QuestionRepository
	extractor    TextExtractor
	formatters   FormatterFactory
	validator    *validator.Validator
	logger       *zap.Logger
}

// NewUsecase creates a new document use case
func NewUsecase(
	documentRepo repository.DocumentRepository,
	questionRepo repository.QuestionRepository,
	extractor TextExtractor,
	formatters FormatterFactory,
	validator *validator.Validator,
	logger *zap.Logger,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo: documentRepo,
		questionRepo: questionRepo,
		extractor:    extractor,
		formatters:   formatters,
		validator:    validator,
		logger:       logger,
	}
}

// Upload extracts the text of an uploaded PDF and stores it as a document.
// Nothing is stored when extraction fails.
func (uc *DocumentUsecase) Upload(ctx context.Context, req *entity.UploadDocumentRequest) (*entity.Document, error) {
	if err := uc.validator.ValidateUpload(req.File); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = validator.TitleFromFilename(req.File.Filename)
	}
	if err := uc.validator.ValidateTitle(title); err != nil {
		return nil, err
	}

	data, err := readFile(req.File)
	if err != nil {
		return nil, err
	}

	extracted, err := uc.extractor.Extract(ctx, req.File.Filename, data)
	if err != nil {
		ctxzap.Warn(ctx, "pdf extraction failed",
			zap.String("filename", req.File.Filename),
			zap.Int("size", len(data)),
			zap.Error(err),
		)
		return nil, err
	}

	doc, err := uc.documentRepo.Create(ctx, entity.Document{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Title:     title,
		Content:   extracted.Text,
		PageCount: extracted.PageCount,
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	ctxzap.Info(ctx, "document uploaded",
		zap.String("document_id", doc.ID),
		zap.String("user_id", req.UserID),
		zap.Int("page_count", doc.PageCount),
		zap.Int("content_length", len(doc.Content)),
	)

	return doc, nil
}

// List returns the user's documents, newest first
func (uc *DocumentUsecase) List(ctx context.Context, userID string, req *entity.ListDocumentsRequest) ([]*entity.Document, error) {
	req.Normalize()

	docs, err := uc.documentRepo.ListByOwner(ctx, userID, req.Skip, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

func (uc *DocumentUsecase) Get(ctx context.Context, id, userID string) (*entity.Document, error) {
	return uc.documentRepo.GetByOwner(ctx, id, userID)
}

// UpdateTitle changes document metadata. The extracted content is never rewritten.
func (uc *DocumentUsecase) UpdateTitle(ctx context.Context, id, userID string, req *entity.UpdateDocumentRequest) (*entity.Document, error) {
	title := strings.TrimSpace(req.Title)
	if err := uc.validator.ValidateTitle(title); err != nil {
		return nil, err
	}

	doc, err := uc.documentRepo.UpdateTitle(ctx, id, userID, title)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "document title updated", zap.String("document_id", doc.ID))

	return doc, nil
}

// Delete removes the document together with its Q&A history
func (uc *DocumentUsecase) Delete(ctx context.Context, id, userID string) error {
	if err := uc.documentRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	ctxzap.Info(ctx, "document deleted", zap.String("document_id", id), zap.String("user_id", userID))

	return nil
}

// Export renders the document's Q&A history, oldest question first
func (uc *DocumentUsecase) Export(ctx context.Context, id, userID string, format entity.ResultFormat) (*entity.ExportedFile, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: format must be one of markdown, pdf, docx", entity.ErrInvalidParameter)
	}

	doc, err := uc.documentRepo.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	questions, err := uc.questionRepo.ListByOwner(ctx, userID, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	slices.Reverse(questions)

	fm, err := uc.formatters.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidParameter, err)
	}

	data, err := fm.Format(doc, questions)
	if err != nil {
		return nil, fmt.Errorf("format export: %w", err)
	}

	ctxzap.Info(ctx, "document exported",
		zap.String("document_id", doc.ID),
		zap.String("format", string(format)),
		zap.Int("question_count", len(questions)),
	)

	return &entity.ExportedFile{
		Filename:    validator.SanitizeFilename(doc.Title) + fm.FileExtension(),
		ContentType: fm.ContentType(),
		Data:        data,
	}, nil
}
