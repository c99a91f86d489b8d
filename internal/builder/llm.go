package builder

import (
	"context"
	"fmt"
	"io"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/integration/llm"
	pkgHTTP "github.com/futig/docqa-backend/pkg/http"
	"go.uber.org/zap"
)

const userAgent = "docqa-backend"

// setupLLMClient builds the provider client once per process. The returned
// closer is nil when the client holds no resources.
func setupLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (llm.Client, io.Closer, error) {
	llmCfg := cfg.LLMConnectorCfg

	if cfg.EnableMocks {
		logger.Info("Using mock LLM client")
		return llm.NewMockClient(logger), nil, nil
	}

	logger.Info("Using real LLM client",
		zap.String("provider", llmCfg.Provider),
		zap.String("model", llmCfg.Model),
		zap.String("safety_threshold", llmCfg.SafetyThreshold),
	)

	switch llmCfg.Provider {
	case config.ProviderOpenAI:
		httpClient := pkgHTTP.NewClient(
			pkgHTTP.WithTimeouts(pkgHTTP.Timeouts{
				Request:        llmCfg.RequestTimeout,
				Dial:           llmCfg.ConnTimeout,
				KeepAlive:      llmCfg.KeepAlive,
				IdleConn:       llmCfg.IdleConnTimeout,
				ResponseHeader: llmCfg.ResponseHeaderTimeout,
			}),
			pkgHTTP.WithUserAgent(userAgent),
			pkgHTTP.WithRequestLogging(),
		)
		client, err := llm.NewOpenAIClient(llmCfg, httpClient)
		if err != nil {
			return nil, nil, fmt.Errorf("create openai client: %w", err)
		}
		return client, nil, nil
	default:
		client, err := llm.NewGeminiClient(ctx, llmCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini client: %w", err)
		}
		return client, client, nil
	}
}
