package formatter

import (
	"bytes"
	"fmt"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(doc *entity.Document, questions []*entity.Question) ([]byte, error) {
	out := document.New()
	defer out.Close()

	addStyled(out, "Title", doc.Title)
	out.AddParagraph().AddRun().AddText(docHeader(doc))
	addStyled(out, "Heading1", questionsHeading)

	if len(questions) == 0 {
		out.AddParagraph().AddRun().AddText(noQuestionsText)
	}

	for i, q := range questions {
		addStyled(out, "Heading2", fmt.Sprintf("%d. %s", i+1, q.QuestionText))
		out.AddParagraph().AddRun().AddText(q.AnswerText)

		meta := out.AddParagraph().AddRun()
		meta.Properties().SetItalic(true)
		meta.AddText("Asked at " + askedAt(q))
	}

	var buf bytes.Buffer
	if err := out.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addStyled(doc *document.Document, style, text string) {
	par := doc.AddParagraph()
	par.SetStyle(style)
	par.AddRun().AddText(text)
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
