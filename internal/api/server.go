package api

import (
	"net/http"
	"time"

	"github.com/futig/docqa-backend/internal/api/docs"
	documentapi "github.com/futig/docqa-backend/internal/api/document"
	"github.com/futig/docqa-backend/internal/api/middleware"
	questionapi "github.com/futig/docqa-backend/internal/api/question"
	userapi "github.com/futig/docqa-backend/internal/api/user"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	User     *userapi.Handler
	Document *documentapi.Handler
	Question *questionapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	handlers Handlers,
	auth middleware.Authenticator,
	requestTimeout time.Duration,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	// Must outlast the LLM retry budget
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	userapi.RegisterRoutes(r, handlers.User)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(auth))

		documentapi.RegisterRoutes(r, handlers.Document)
		questionapi.RegisterRoutes(r, handlers.Question)
	})

	return r
}
