package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/futig/docqa-backend/internal/api"
	documentapi "github.com/futig/docqa-backend/internal/api/document"
	questionapi "github.com/futig/docqa-backend/internal/api/question"
	userapi "github.com/futig/docqa-backend/internal/api/user"
	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/integration/llm"
	"github.com/futig/docqa-backend/internal/pkg/formatter"
	pkgLogger "github.com/futig/docqa-backend/internal/pkg/logger"
	"github.com/futig/docqa-backend/internal/pkg/pdftext"
	"github.com/futig/docqa-backend/internal/pkg/validator"
	"github.com/futig/docqa-backend/internal/repository"
	"github.com/futig/docqa-backend/internal/usecase/document"
	"github.com/futig/docqa-backend/internal/usecase/question"
	"github.com/futig/docqa-backend/internal/usecase/user"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// The LLM client comes first so a missing API key fails before any connection is opened
	llmClient, llmCloser, err := setupLLMClient(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup llm client: %w", err)
	}

	closers := make([]io.Closer, 0, 1)
	if llmCloser != nil {
		closers = append(closers, llmCloser)
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	userRepo := repository.NewUserPostgres(db)
	documentRepo := repository.NewDocumentPostgres(db)
	questionRepo := repository.NewQuestionPostgres(db)
	logger.Info("Repositories initialized")

	v := validator.NewValidator(cfg.FileUploadCfg)
	generator := llm.NewGenerator(llmClient, cfg.LLMConnectorCfg.Retry)

	userUC := user.NewUsecase(userRepo, v, cfg.AuthCfg, logger)
	documentUC := document.NewUsecase(
		documentRepo,
		questionRepo,
		pdftext.NewExtractor(),
		formatter.NewFactory(),
		v,
		logger,
	)
	questionUC := question.NewUsecase(
		documentRepo,
		questionRepo,
		generator,
		cfg.LLMConnectorCfg.MaxPromptLength,
		logger,
	)
	logger.Info("Use cases initialized")

	router := api.SetupRouter(api.Handlers{
		User:     userapi.NewHandler(userUC),
		Document: documentapi.NewHandler(documentUC, cfg.FileUploadCfg),
		Question: questionapi.NewHandler(questionUC),
	}, userUC, cfg.RequestTimeout, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
		// Answers may take the whole retry budget of the LLM client
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
		zap.Bool("mocks", cfg.EnableMocks),
	)

	return &App{
		server:          server,
		db:              db,
		closers:         closers,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}
