package utils

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
)

// sniffLen is the number of bytes http.DetectContentType looks at.
const sniffLen = 512

// ContentType returns the declared MIME type of an upload, normalised to
// lower case without parameters. When nothing was declared it is sniffed
// from the data instead.
func ContentType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil {
			return mediaType
		}
		return strings.ToLower(declared)
	}

	if len(data) == 0 {
		return "application/octet-stream"
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}

// IsImage reports whether a MIME type belongs to the image/ family.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// ReadFile reads a multipart file, refusing to buffer more than limit bytes.
// The returned size is the number of bytes actually read, which may be
// limit+1 when the part is larger than allowed.
func ReadFile(file *multipart.FileHeader, limit int64) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
