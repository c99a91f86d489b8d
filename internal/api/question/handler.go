package question

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/docqa-backend/internal/api/middleware"
	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/logger"
	"github.com/futig/docqa-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const generationFailedMessage = "failed to generate answer, please try again later"

type Handler struct {
	usecase QuestionUsecase
}

func NewHandler(usecase QuestionUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Ask handles POST /questions/ask
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AskQuestion")
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
		return
	}

	var req entity.AskQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.usecase.Ask(ctx, user.ID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, toQuestionResponse(q))
}

// List handles GET /questions?document={document_id}
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListQuestions")
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
		return
	}

	questions, err := h.usecase.List(ctx, user.ID, r.URL.Query().Get("document"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	items := make([]*entity.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		items = append(items, toQuestionResponse(q))
	}

	response.Success(w, &entity.ListQuestionsResponse{Questions: items})
}

// Get handles GET /questions/{question_id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, user, id, ok := h.scope(w, r, "GetQuestion")
	if !ok {
		return
	}

	q, err := h.usecase.Get(ctx, id, user.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toQuestionResponse(q))
}

// Delete handles DELETE /questions/{question_id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, user, id, ok := h.scope(w, r, "DeleteQuestion")
	if !ok {
		return
	}

	if err := h.usecase.Delete(ctx, id, user.ID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, &entity.DeleteResponse{Status: "deleted"})
}

func (h *Handler) scope(w http.ResponseWriter, r *http.Request, action string) (context.Context, *entity.User, string, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, entity.ErrUnauthorized.Error())
		return nil, nil, "", false
	}

	id := chi.URLParam(r, "question_id")
	ctx := logger.AddFields(r.Context(),
		zap.String("action", action),
		zap.String("question_id", id),
	)
	return ctx, user, id, true
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrDocumentNotFound),
		errors.Is(err, entity.ErrQuestionNotFound):
		ctxzap.Info(ctx, "resource not found", zap.Error(err))
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrMissingQuestion),
		errors.Is(err, entity.ErrEmptyDocument),
		errors.Is(err, entity.ErrContentBlocked):
		ctxzap.Info(ctx, "question rejected", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrGenerationFailed):
		ctxzap.Error(ctx, "answer generation failed", logger.ErrorText(err))
		response.Error(w, http.StatusInternalServerError, generationFailedMessage)
	default:
		ctxzap.Error(ctx, "internal server error", logger.ErrorText(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
