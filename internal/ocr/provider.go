package ocr

import "context"

// Provider defines the interface for remote vision/OCR providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Recognize extracts raw text from the document in req.
	// Any error is treated by the orchestrator as provider unavailability
	// and is never surfaced to the caller.
	Recognize(ctx context.Context, req Request) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Request carries one pre-validated document into a provider call
type Request struct {
	// Data is the raw image/PDF bytes
	Data []byte

	// Filename is the original upload name, for logging context only
	Filename string

	// MIMEType is the sniffed content type (e.g. "image/jpeg")
	MIMEType string
}

// BuildPrompt constructs the instruction sent alongside the document image.
// The provider is asked for a plain transcription; structuring happens in
// the extraction engine, never in the provider.
func BuildPrompt() string {
	return `Analyze this medical claim document and extract all visible text.
Pay special attention to:
- Patient information (name, age, ID)
- Diagnosis details
- Medications (names, dosages, quantities)
- Procedures performed
- Admission/discharge dates
- Total amounts and costs
- Doctor/facility information

Return the complete text content as clearly as possible.`
}
