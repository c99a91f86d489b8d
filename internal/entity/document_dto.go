package entity

import "mime/multipart"

type UploadDocumentRequest struct {
	UserID string
	Title  string
	File   *multipart.FileHeader
}

type UpdateDocumentRequest struct {
	Title string `json:"title"`
}

type ListDocumentsRequest struct {
	Skip  int
	Limit int
}

func (ld *ListDocumentsRequest) Normalize() {
	if ld.Skip < 0 {
		ld.Skip = 0
	}
	if ld.Limit <= 0 {
		ld.Limit = 20
	}

	ld.Limit = min(ld.Limit, 100)
}

type DocumentResponse struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	PageCount int          `json:"page_count"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
	User      *UserSummary `json:"user,omitempty"`
}

type DocumentSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	PageCount int    `json:"page_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ListDocumentsResponse struct {
	Documents []*DocumentSummary `json:"documents"`
}

type DeleteResponse struct {
	Status string `json:"status"`
}

// ExportedFile is a rendered Q&A history ready to be served.
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
