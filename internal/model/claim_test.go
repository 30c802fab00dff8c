package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewClaimRecord_CompleteShape(t *testing.T) {
	rec := NewClaimRecord()

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// List-valued fields serialize as [], never null
	for _, field := range []string{`"diagnoses":[]`, `"medications":[]`, `"procedures":[]`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Expected %s in %s", field, data)
		}
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("Expected no null fields, got %s", data)
	}
}

func TestMedication_SubFieldsAlwaysPresent(t *testing.T) {
	data, err := json.Marshal(Medication{Name: "Ibuprofen"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Empty dosage and quantity are serialized, not omitted
	want := `{"name":"Ibuprofen","dosage":"","quantity":""}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestValidationError(t *testing.T) {
	err := Validationf("unsupported file extension %q", ".exe")

	if !IsValidation(err) {
		t.Error("Expected IsValidation to be true")
	}
	if !strings.Contains(err.Error(), ".exe") {
		t.Errorf("Expected formatted reason, got %q", err.Error())
	}

	wrapped := errors.New("something else")
	if IsValidation(wrapped) {
		t.Error("Expected IsValidation false for an unrelated error")
	}
	if IsValidation(ErrNotFound) {
		t.Error("Expected IsValidation false for ErrNotFound")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.OCR.Provider != "" {
		t.Errorf("Expected no provider by default, got %q", cfg.OCR.Provider)
	}
	if cfg.Limits.MaxUploadBytes != 10<<20 {
		t.Errorf("Expected 10 MiB upload cap, got %d", cfg.Limits.MaxUploadBytes)
	}
	if cfg.QA.CanonicalQuestion == "" {
		t.Error("Expected a canonical question")
	}
	if cfg.QA.AnswerDelay <= 0 {
		t.Error("Expected a positive answer delay")
	}
}
