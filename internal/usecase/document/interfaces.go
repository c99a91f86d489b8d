package document

import (
	"context"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/pkg/formatter"
)

type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*entity.ExtractedText, error)
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
