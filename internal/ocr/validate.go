package ocr

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/osadebe/claimsight/internal/model"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".pdf":  true,
}

var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/bmp":       true,
	"image/tiff":      true,
	"application/pdf": true,
}

// ValidateDocument checks size, extension and sniffed content type before any
// OCR work happens. Violations are caller errors and never reach the provider
// or the store. On success it returns the detected MIME type.
func ValidateDocument(data []byte, filename string, maxBytes int64) (string, error) {
	if len(data) == 0 {
		return "", model.Validationf("empty document")
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", model.Validationf("document too large: %d bytes (max %d)", len(data), maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", model.Validationf("unsupported file extension %q", ext)
	}

	mimeType := detectMIMEType(data)
	if !allowedTypes[mimeType] {
		return "", model.Validationf("unsupported or corrupted content (detected %s)", mimeType)
	}

	return mimeType, nil
}

// detectMIMEType sniffs the content type from the leading bytes.
// TIFF is checked explicitly because net/http does not sniff it.
func detectMIMEType(data []byte) string {
	if len(data) >= 4 {
		magic := string(data[:4])
		if magic == "II*\x00" || magic == "MM\x00*" {
			return "image/tiff"
		}
	}
	return http.DetectContentType(data)
}
