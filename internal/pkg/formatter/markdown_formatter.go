package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/docqa-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(doc *entity.Document, questions []*entity.Question) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n_%s_\n\n## %s\n\n", doc.Title, docHeader(doc), questionsHeading)

	if len(questions) == 0 {
		fmt.Fprintf(&buf, "%s\n", noQuestionsText)
		return buf.Bytes(), nil
	}

	for i, q := range questions {
		fmt.Fprintf(&buf, "### %d. %s\n\n%s\n\n_Asked at %s_\n\n", i+1, q.QuestionText, q.AnswerText, askedAt(q))
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
