package document

import (
	"fmt"
	"io"
	"mime/multipart"
)

// readFile reads the whole upload into memory
func readFile(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fh.Filename, err)
	}

	return data, nil
}
