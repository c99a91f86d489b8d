package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/logger"
	pkgRetry "github.com/futig/docqa-backend/internal/pkg/retry"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const answerPreviewLength = 100

// Client is a provider adapter. Implementations normalize the provider
// response into entity.LLMResponse and report refusals via BlockReason.
type Client interface {
	Generate(ctx context.Context, prompt string) (*entity.LLMResponse, error)
}

// Generator produces answers with bounded retries around a Client.
type Generator struct {
	client   Client
	retryCfg pkgRetry.RetryConfig
}

func NewGenerator(client Client, retryCfg pkgRetry.RetryConfig) *Generator {
	return &Generator{
		client:   client,
		retryCfg: retryCfg,
	}
}

// Generate returns the answer text for prompt. A content block fails at
// once with ErrContentBlocked. Any other failure is retried and the error of
// the last attempt is returned unchanged.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		answer  string
		attempt uint
	)

	err := pkgRetry.Do(ctx, g.retryCfg, Classify,
		func(n uint, err error) {
			ctxzap.Warn(ctx, "answer generation attempt failed",
				zap.Uint("attempt", n),
				zap.Uint("max_attempts", g.retryCfg.Attempts),
				logger.ErrorText(err),
			)
		},
		func(ctx context.Context) error {
			attempt++
			resp, err := g.client.Generate(ctx, prompt)
			if err != nil {
				return err
			}

			text, err := extractAnswer(resp)
			if err != nil {
				return err
			}
			answer = text
			return nil
		},
	)
	if err != nil {
		if errors.Is(err, entity.ErrContentBlocked) {
			ctxzap.Warn(ctx, "answer generation blocked by safety filter", logger.ErrorText(err))
		}
		return "", err
	}

	ctxzap.Info(ctx, "answer generated",
		zap.Uint("attempt", attempt),
		zap.String("answer_preview", logger.Preview(answer, answerPreviewLength)),
	)

	return answer, nil
}

// extractAnswer turns a normalized response into answer text.
func extractAnswer(resp *entity.LLMResponse) (string, error) {
	if resp == nil {
		return "", entity.ErrUnexpectedResponseFormat
	}
	if resp.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", entity.ErrContentBlocked, resp.BlockReason)
	}

	var text string
	switch resp.Kind {
	case entity.ResponseDirectText:
		text = resp.Text
	case entity.ResponsePartsList:
		text = strings.Join(resp.Parts, " ")
	default:
		return "", entity.ErrUnexpectedResponseFormat
	}

	if strings.TrimSpace(text) == "" {
		return "", entity.ErrEmptyResponse
	}
	return text, nil
}

// Classify separates failures that must not be repeated from transient ones.
func Classify(err error) pkgRetry.Class {
	switch {
	case errors.Is(err, entity.ErrContentBlocked),
		errors.Is(err, entity.ErrMissingAPIKey),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return pkgRetry.Terminal
	default:
		return pkgRetry.Retryable
	}
}
