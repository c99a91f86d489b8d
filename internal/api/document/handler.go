package document

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/futig/docqa-backend/internal/api/middleware"
	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/logger"
	"github.com/futig/docqa-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase DocumentUsecase
	cfg     config.FileUploadConfig
}

func NewHandler(usecase DocumentUsecase, cfg config.FileUploadConfig) *Handler {
	return &Handler{
		usecase: usecase,
		cfg:     cfg,
	}
}

// Upload handles POST /documents
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadDocument")
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadSize); err != nil {
		ctxzap.Warn(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid form data or size too large")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := entity.UploadDocumentRequest{
		UserID: user.ID,
		Title:  r.FormValue("title"),
	}
	if files := r.MultipartForm.File["file"]; len(files) > 0 {
		req.File = files[0]
	}

	doc, err := h.usecase.Upload(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toDocumentResponse(doc, user))
}

// List handles GET /documents
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListDocuments")
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	docs, err := h.usecase.List(ctx, user.ID, &entity.ListDocumentsRequest{Skip: skip, Limit: limit})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	summaries := make([]*entity.DocumentSummary, 0, len(docs))
	for _, d := range docs {
		summaries = append(summaries, toDocumentSummary(d))
	}

	ctxzap.Debug(ctx, "documents listed", zap.Int("count", len(summaries)))
	response.Success(w, &entity.ListDocumentsResponse{Documents: summaries})
}

// Get handles GET /documents/{document_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, user, id, ok := h.scope(w, r, "GetDocument")
	if !ok {
		return
	}

	doc, err := h.usecase.Get(ctx, id, user.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toDocumentResponse(doc, user))
}

// Update handles PATCH /documents/{document_id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, user, id, ok := h.scope(w, r, "UpdateDocument")
	if !ok {
		return
	}

	var req entity.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.usecase.UpdateTitle(ctx, id, user.ID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toDocumentResponse(doc, user))
}

// Delete handles DELETE /documents/{document_id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, user, id, ok := h.scope(w, r, "DeleteDocument")
	if !ok {
		return
	}

	if err := h.usecase.Delete(ctx, id, user.ID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DeleteResponse{Status: "deleted"})
}

// Export handles GET /documents/{document_id}/export?format=markdown|pdf|docx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx, user, id, ok := h.scope(w, r, "ExportDocument")
	if !ok {
		return
	}

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatMarkdown
	}

	file, err := h.usecase.Export(ctx, id, user.ID, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.File(w, file)
}

// scope resolves the current user and the document id of the route
func (h *Handler) scope(w http.ResponseWriter, r *http.Request, action string) (context.Context, *entity.User, string, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
		return nil, nil, "", false
	}

	id := chi.URLParam(r, "document_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("action", action),
		zap.String("document_id", id),
	)
	return ctx, user, id, true
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrDocumentNotFound):
		ctxzap.Info(ctx, "document not found")
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrMissingFile),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrExtraction),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter):
		ctxzap.Info(ctx, "invalid document request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		ctxzap.Error(ctx, "internal server error", logger.ErrorText(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
