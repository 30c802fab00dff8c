package ocr

import (
	"fmt"
	"strings"

	"github.com/osadebe/claimsight/internal/model"
)

// NewProvider creates a vision provider based on configuration.
// An empty provider name returns (nil, nil): OCR runs in fallback mode only.
func NewProvider(config model.OCRConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewVisionProvider(config)

	case "":
		// No provider configured - fallback mode only
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown OCR provider: %s (supported: openai)", config.Provider)
	}
}
