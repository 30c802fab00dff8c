package model

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an unknown document identifier. It is distinct from a
// record that exists but has no medication data.
var ErrNotFound = errors.New("document not found")

// ValidationError marks caller mistakes (oversized upload, unsupported file
// type, empty question). These are rejected before any OCR or store work.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// Validationf builds a ValidationError from a format string
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
