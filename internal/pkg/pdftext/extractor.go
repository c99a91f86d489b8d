package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/gen2brain/go-fitz"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"
)

const pdfExtension = ".pdf"

// Extractor converts raw PDF bytes into plain text.
// MuPDF opens the file and extracts the text, pdfcpu counts pages when it can.
type Extractor struct {
	conf *model.Configuration
}

func NewExtractor() *Extractor {
	// keep pdfcpu from creating a user config directory
	api.DisableConfigDir()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Extractor{conf: conf}
}

// HasPDFExtension reports whether filename ends with .pdf, ignoring case.
func HasPDFExtension(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), pdfExtension)
}

// pageCount prefers the pdfcpu page tree and falls back to MuPDF when
// pdfcpu cannot read the file.
func (e *Extractor) pageCount(ctx context.Context, data []byte, doc *fitz.Document) int {
	n, err := api.PageCount(bytes.NewReader(data), e.conf)
	if err != nil {
		ctxzap.Debug(ctx, "pdfcpu page count failed, using mupdf", zap.Error(err))
		return doc.NumPage()
	}
	return n
}

// Extract returns the text of every page concatenated in document order.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (*entity.ExtractedText, error) {
	if !HasPDFExtension(filename) {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidExtension, filename)
	}
	if len(data) == 0 {
		return nil, entity.ErrEmptyFile
	}

	// MuPDF repairs damaged cross-reference tables, so it decides what is corrupt
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrCorruptPDF, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("%w: no pages", entity.ErrCorruptPDF)
	}

	pageCount := e.pageCount(ctx, data, doc)

	var text strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageText, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", entity.ErrCorruptPDF, i+1, err)
		}
		text.WriteString(pageText)
	}

	result := text.String()
	if strings.TrimSpace(result) == "" {
		return nil, entity.ErrNoExtractableText
	}

	ctxzap.Debug(ctx, "pdf text extracted",
		zap.String("filename", filename),
		zap.Int("page_count", pageCount),
		zap.Int("text_length", len(result)),
	)

	return &entity.ExtractedText{
		Text:      result,
		PageCount: pageCount,
	}, nil
}
