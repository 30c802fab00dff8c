package extract

import (
	"strings"

	"github.com/osadebe/claimsight/internal/model"
)

// Engine converts raw OCR text into a complete ClaimRecord field set.
// It applies an ordered list of field extractors; each one is total - a
// non-match leaves its field in the empty representation and never stops
// the run. Partial extraction is the normal case, not an error.
type Engine struct {
	extractors []fieldExtractor
}

// fieldExtractor fills one field group of the record from normalized text.
// Extractors are independent: none reads what another wrote.
type fieldExtractor struct {
	name  string
	apply func(text string, rec *model.ClaimRecord)
}

// NewEngine creates a new extraction engine
func NewEngine() *Engine {
	return &Engine{
		extractors: []fieldExtractor{
			{"patient", extractPatient},
			{"diagnoses", extractDiagnoses},
			{"medications", extractMedications},
			{"procedures", extractProcedures},
			{"admission", extractAdmission},
			{"total_amount", extractTotalAmount},
		},
	}
}

// Extract parses the OCR text into an unstored record. The output shape is
// always complete: slices are non-nil and the admission object is present
// even when nothing matched.
func (e *Engine) Extract(text string) *model.ClaimRecord {
	rec := model.NewClaimRecord()
	normalized := normalizeText(text)

	for _, fx := range e.extractors {
		fx.apply(normalized, rec)
	}

	return rec
}

// normalizeText collapses runs of spaces and tabs and trims each line, while
// keeping the line structure the label patterns rely on.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// titleCase uppercases the first letter of each word, original-case the rest
// lowered. Used for names, diagnoses and procedure labels.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// dedupe removes case-insensitive duplicates while preserving first-seen
// order. A candidate already contained in an earlier entry is dropped too,
// so lexicon hits never shadow a fuller labeled match.
func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		lower := strings.ToLower(item)
		keep := true
		for _, existing := range out {
			if strings.Contains(strings.ToLower(existing), lower) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}
