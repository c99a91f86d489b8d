package formatter

import (
	"fmt"
	"time"

	"github.com/futig/docqa-backend/internal/entity"
)

const (
	questionsHeading = "Questions and answers"
	noQuestionsText  = "No questions have been asked about this document yet."
	timeLayout       = "2006-01-02 15:04"
)

// Formatter renders a document's Q&A history into a downloadable file.
type Formatter interface {
	Format(doc *entity.Document, questions []*entity.Question) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func docHeader(doc *entity.Document) string {
	return fmt.Sprintf("%d pages, uploaded %s", doc.PageCount, doc.CreatedAt.UTC().Format(timeLayout))
}

func askedAt(q *entity.Question) string {
	return q.CreatedAt.UTC().Format(time.RFC3339)
}
