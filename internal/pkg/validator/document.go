package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/entity"
)

const maxTitleLength = 255

// Validator validates incoming requests
type Validator struct {
	cfg config.FileUploadConfig
}

func NewValidator(cfg config.FileUploadConfig) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateUpload checks presence and size of an uploaded file.
// Format checks belong to the PDF extractor.
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	if fh == nil {
		return entity.ErrMissingFile
	}

	if v.cfg.MaxFileSize > 0 && fh.Size > v.cfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)", entity.ErrFileTooLarge, fh.Filename, fh.Size, v.cfg.MaxFileSize)
	}

	return nil
}

// ValidateTitle checks a user supplied document title.
func (v *Validator) ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title", entity.ErrMissingField)
	}
	if len([]rune(title)) > maxTitleLength {
		return fmt.Errorf("%w: title longer than %d characters", entity.ErrInvalidParameter, maxTitleLength)
	}
	return nil
}

// TitleFromFilename returns the base filename without its extension.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
		`"`, "",
	)
	return replacer.Replace(filename)
}
