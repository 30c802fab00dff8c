package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/osadebe/claimsight/internal/model"
)

var (
	patientNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^(?:patient\s+)?name:\s*([a-z][a-z .'-]*[a-z.])\s*$`),
		regexp.MustCompile(`(?i)\b(?:patient\s+)?name:\s*([a-z][a-z .'-]*?)\s+(?:age|id|dob)\b`),
		regexp.MustCompile(`(?im)^patient:\s*([a-z][a-z .'-]*[a-z.])\s*$`),
	}

	patientAgePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bage:?\s*(\d{1,3})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,3})\s*years?\s*old\b`),
	}

	diagnosisLabelPattern = regexp.MustCompile(`(?im)^(?:diagnosis|diagnoses|condition|diagnosed with):\s*(.+)$`)

	// Conditions recognized even without a labeled line
	diagnosisLexicon = []string{
		"malaria", "typhoid", "fever", "headache", "flu", "cold", "infection",
	}

	medicationClusterPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([a-z]+(?:/[a-z]+)?)\s*[-: ]\s*(\d+\s*mg)\b[^\n]*?quantity:\s*(\d+(?:\s*(?:tablets?|capsules?|sachets?))?)`),
		regexp.MustCompile(`(?i)([a-z]+(?:/[a-z]+)?)\s*[-:]?\s*(\d+\s*mg)\s*[-:]\s*(\d+\s*(?:tablets?|capsules?))`),
	}

	// Medications recognized by name alone; such hits yield an entry with
	// empty dosage and quantity rather than invented values
	medicationLexicon = []string{
		"paracetamol", "ibuprofen", "artemether", "lumefantrine",
		"aspirin", "amoxicillin", "chloroquine", "metformin",
	}

	procedureHeadingPattern = regexp.MustCompile(`(?i)^(?:procedures?|tests?|treatments?):\s*(.*)$`)

	procedureLexicon = []string{
		"malaria rapid test", "malaria test", "blood test", "rapid test",
		"x-ray", "consultation",
	}

	admissionIndicatorPattern = regexp.MustCompile(`(?i)\b(?:admitted|admission|inpatient|ward)\b`)

	admissionDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)admission date:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(?i)admitted(?: on)?:\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	}

	dischargeDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)discharge date:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		regexp.MustCompile(`(?i)discharged(?: on)?:\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	}

	listSplitPattern = regexp.MustCompile(`[,;]\s*`)

	totalAmountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total amount:?\s*[₦$]?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\btotal:?\s*[₦$]?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\bamount:?\s*[₦$]?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
		regexp.MustCompile(`(?i)\bbill:?\s*[₦$]?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
		regexp.MustCompile(`[₦$]\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
	}
)

// firstMatch runs all patterns and returns the capture whose start position
// is earliest in the text. This is the tie-break rule for singular fields:
// first match in document order wins, regardless of pattern order.
func firstMatch(text string, patterns []*regexp.Regexp) string {
	best := -1
	var value string

	for _, re := range patterns {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil || loc[2] < 0 {
			continue
		}
		if best == -1 || loc[2] < best {
			best = loc[2]
			value = strings.TrimSpace(text[loc[2]:loc[3]])
		}
	}

	return value
}

// lexiconHits returns the terms present in text, ordered by their first
// occurrence so extraction order follows document order.
func lexiconHits(text string, terms []string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		term string
		pos  int
	}
	var hits []hit
	for _, term := range terms {
		if pos := strings.Index(lower, term); pos >= 0 {
			hits = append(hits, hit{term: term, pos: pos})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, titleCase(h.term))
	}
	return out
}

func extractPatient(text string, rec *model.ClaimRecord) {
	if name := firstMatch(text, patientNamePatterns); name != "" {
		rec.Patient.Name = titleCase(name)
	}

	if ageStr := firstMatch(text, patientAgePatterns); ageStr != "" {
		if age, err := strconv.Atoi(ageStr); err == nil && age >= 0 {
			rec.Patient.Age = age
		}
	}
}

func extractDiagnoses(text string, rec *model.ClaimRecord) {
	var found []string

	if m := diagnosisLabelPattern.FindStringSubmatch(text); m != nil {
		for _, part := range listSplitPattern.Split(m[1], -1) {
			if part = strings.TrimSpace(part); part != "" {
				found = append(found, titleCase(part))
			}
		}
	}

	found = append(found, lexiconHits(text, diagnosisLexicon)...)
	rec.Diagnoses = append(rec.Diagnoses, dedupe(found)...)
}

func extractMedications(text string, rec *model.ClaimRecord) {
	var meds []model.Medication

	for _, re := range medicationClusterPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			meds = append(meds, model.Medication{
				Name:     titleCase(m[1]),
				Dosage:   normalizeDosage(m[2]),
				Quantity: strings.ToLower(strings.TrimSpace(m[3])),
			})
		}
	}

	// Name-only lexicon hits still yield an entry; missing sub-fields stay
	// explicitly empty
	for _, name := range lexiconHits(text, medicationLexicon) {
		if !containsMedication(meds, name) {
			meds = append(meds, model.Medication{Name: name})
		}
	}

	rec.Medications = append(rec.Medications, dedupeMedications(meds)...)
}

func containsMedication(meds []model.Medication, name string) bool {
	lower := strings.ToLower(name)
	for _, m := range meds {
		if strings.Contains(strings.ToLower(m.Name), lower) {
			return true
		}
	}
	return false
}

func dedupeMedications(meds []model.Medication) []model.Medication {
	seen := make(map[string]bool)
	out := make([]model.Medication, 0, len(meds))
	for _, m := range meds {
		key := strings.ToLower(m.Name)
		if !seen[key] {
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

func normalizeDosage(dosage string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(dosage)), " ", "")
}

func extractProcedures(text string, rec *model.ClaimRecord) {
	var found []string

	// Labeled heading, optionally followed by a bulleted list
	inSection := false
	for _, line := range strings.Split(text, "\n") {
		if m := procedureHeadingPattern.FindStringSubmatch(line); m != nil {
			inSection = true
			for _, part := range listSplitPattern.Split(m[1], -1) {
				if part = strings.TrimSpace(part); part != "" {
					found = append(found, titleCase(part))
				}
			}
			continue
		}
		if inSection {
			if rest, ok := strings.CutPrefix(line, "- "); ok {
				found = append(found, titleCase(rest))
			} else {
				inSection = false
			}
		}
	}

	found = append(found, lexiconHits(text, procedureLexicon)...)
	rec.Procedures = append(rec.Procedures, dedupe(found)...)
}

func extractAdmission(text string, rec *model.ClaimRecord) {
	rec.Admission.WasAdmitted = admissionIndicatorPattern.MatchString(text)

	// Invariant: a non-admission never carries dates
	if !rec.Admission.WasAdmitted {
		return
	}

	if d := firstMatch(text, admissionDatePatterns); d != "" {
		rec.Admission.AdmissionDate = normalizeDate(d)
	}
	if d := firstMatch(text, dischargeDatePatterns); d != "" {
		rec.Admission.DischargeDate = normalizeDate(d)
	}
}

func extractTotalAmount(text string, rec *model.ClaimRecord) {
	if amount := firstMatch(text, totalAmountPatterns); amount != "" {
		rec.TotalAmount = formatCurrency(amount)
	}
}

// normalizeDate converts the common day/month orderings to ISO YYYY-MM-DD.
// Day-first layouts are tried before month-first, matching the claim forms
// this service sees. Unparseable input is kept as-is.
func normalizeDate(raw string) string {
	layouts := []string{
		"02/01/2006", "01/02/2006",
		"02-01-2006", "01-02-2006",
		"02/01/06", "01/02/06",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return raw
}

// formatCurrency renders an extracted numeric amount as ₦ with thousand
// separators and two decimals, e.g. "15000" -> "₦15,000.00".
func formatCurrency(raw string) string {
	raw = strings.ReplaceAll(raw, ",", "")
	intPart, decPart, _ := strings.Cut(raw, ".")
	if intPart == "" {
		return ""
	}

	switch {
	case len(decPart) == 0:
		decPart = "00"
	case len(decPart) == 1:
		decPart += "0"
	default:
		decPart = decPart[:2]
	}

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	return "₦" + b.String() + "." + decPart
}
