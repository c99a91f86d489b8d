package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Upload errors
	ErrMissingFile      = errors.New("no file provided")
	ErrInvalidExtension = errors.New("only PDF files are allowed")
	ErrFileTooLarge     = errors.New("file too large")

	// Extraction errors, each one wraps ErrExtraction
	ErrExtraction        = errors.New("pdf extraction failed")
	ErrEmptyFile         = fmt.Errorf("%w: cannot read an empty PDF file", ErrExtraction)
	ErrCorruptPDF        = fmt.Errorf("%w: invalid or corrupted PDF file", ErrExtraction)
	ErrNoExtractableText = fmt.Errorf("%w: could not extract text from PDF file", ErrExtraction)

	// Document errors
	ErrDocumentNotFound = errors.New("document not found or access denied")
	ErrEmptyDocument    = errors.New("document has no content to analyze")

	// Question errors
	ErrQuestionNotFound = errors.New("question not found")
	ErrMissingQuestion  = errors.New("question text is required")

	// Generation errors
	ErrContentBlocked           = errors.New("response was blocked due to content safety policies")
	ErrGenerationFailed         = errors.New("answer generation failed")
	ErrUnexpectedResponseFormat = errors.New("unexpected response format from LLM")
	ErrEmptyResponse            = errors.New("empty response from LLM")

	// Configuration errors
	ErrMissingAPIKey = errors.New("API key not configured")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("authentication credentials were not provided or are invalid")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
