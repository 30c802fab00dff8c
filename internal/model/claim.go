package model

import "time"

// OCRMode records which code path produced the raw text for a document.
type OCRMode string

const (
	// ModeProvider means the external vision provider returned the text.
	ModeProvider OCRMode = "provider"

	// ModeFallback means the provider was unavailable and the canonical
	// fallback payload was substituted.
	ModeFallback OCRMode = "fallback"
)

// ClaimRecord is the structured representation of one processed claim
// document. A record is write-once: it is built by the extraction engine,
// stamped by the store on insert, and never mutated afterwards.
type ClaimRecord struct {
	DocumentID string    `json:"document_id"` // Assigned by the store at write time
	OCRMode    OCRMode   `json:"ocr_mode"`    // Set once from the orchestrator result
	CreatedAt  time.Time `json:"created_at"`  // Assigned by the store at write time

	Patient     Patient      `json:"patient"`
	Diagnoses   []string     `json:"diagnoses"`   // Extraction order, never nil
	Medications []Medication `json:"medications"` // Extraction order, never nil
	Procedures  []string     `json:"procedures"`  // Extraction order, never nil
	Admission   Admission    `json:"admission"`

	TotalAmount string `json:"total_amount,omitempty"` // Currency-formatted, e.g. "₦15,000"
}

// Patient holds the identified patient fields. Both are optional.
type Patient struct {
	Name string `json:"name,omitempty"`
	Age  int    `json:"age,omitempty"` // 0 means unknown
}

// Medication is one prescribed medication entry. Sub-fields are optional but
// always present in the serialized shape, empty when not detected.
type Medication struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Quantity string `json:"quantity"`
}

// Admission describes the inpatient stay, if any.
// Invariant: if WasAdmitted is false both dates are empty.
type Admission struct {
	WasAdmitted   bool   `json:"was_admitted"`
	AdmissionDate string `json:"admission_date,omitempty"` // ISO date (YYYY-MM-DD)
	DischargeDate string `json:"discharge_date,omitempty"` // ISO date (YYYY-MM-DD)
}

// NewClaimRecord returns a record with a complete shape: all list-valued
// fields are non-nil empty slices so callers and serializers never see an
// absent sequence.
func NewClaimRecord() *ClaimRecord {
	return &ClaimRecord{
		Diagnoses:   []string{},
		Medications: []Medication{},
		Procedures:  []string{},
	}
}
