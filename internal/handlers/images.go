package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const maxImageSize = 1 << 20 // 1MB

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// validateImageFile checks extension, size and sniffed content type of an
// uploaded image. Returns the detected content type for storage.
func validateImageFile(header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the 1MB limit")
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("only jpg, jpeg, png and gif images are allowed")
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file")
	}
	defer file.Close()

	// Sniff the real content type, the filename is not trusted
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read uploaded file")
	}

	contentType := http.DetectContentType(buf[:n])
	if !allowedImageContentTypes[contentType] {
		return "", fmt.Errorf("file content is not a supported image type")
	}
	return contentType, nil
}
