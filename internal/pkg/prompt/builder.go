package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxLength is the character budget for document text in a prompt.
const DefaultMaxLength = 30000

const template = `Based on the following document content, please answer the question.
If the answer cannot be found in the document, please state that explicitly.

Document content:
%s

Question: %s

Please provide a clear and concise answer based only on the information in the document.`

// Truncate limits text to maxLength characters. When a cut is needed it
// backs up to the last period inside the kept prefix so the prompt does not
// end mid-sentence.
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if len(text) <= maxLength || utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	truncated := string([]rune(text)[:maxLength])
	if lastPeriod := strings.LastIndex(truncated, "."); lastPeriod > 0 {
		return truncated[:lastPeriod+1]
	}
	return truncated
}

// Build composes the question-answering prompt for the given document text.
func Build(documentText, question string, maxLength int) string {
	return fmt.Sprintf(template, Truncate(documentText, maxLength), question)
}
