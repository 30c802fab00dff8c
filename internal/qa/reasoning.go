package qa

import "strings"

// reasonFor produces the "and why" clause of the canonical answer from the
// medication name and the primary diagnosis. Medication-specific reasoning
// wins over diagnosis-specific reasoning; the final fallback is generic and
// never a pattern-match failure.
func reasonFor(medication, diagnosis string) string {
	med := strings.ToLower(medication)
	diag := strings.ToLower(diagnosis)

	switch {
	case strings.Contains(med, "paracetamol") || strings.Contains(med, "acetaminophen"):
		switch {
		case strings.Contains(diag, "malaria"):
			return "to reduce fever and alleviate pain associated with malaria infection"
		case strings.Contains(diag, "fever"):
			return "to reduce elevated body temperature and provide pain relief"
		case strings.Contains(diag, "headache"):
			return "to provide effective pain relief for headache symptoms"
		default:
			return "to manage pain and reduce fever symptoms"
		}

	case strings.Contains(med, "artemether") || strings.Contains(med, "lumefantrine"):
		return "as an antimalarial treatment to eliminate malaria parasites from the blood"

	case strings.Contains(med, "ibuprofen"):
		return "to reduce inflammation and fever and provide pain relief"

	case strings.Contains(med, "aspirin"):
		return "to reduce pain, inflammation and fever"

	case strings.Contains(med, "amoxicillin"):
		return "as an antibiotic to treat bacterial infections and prevent complications"

	case strings.Contains(med, "chloroquine"):
		return "to treat and prevent malaria by eliminating parasites from the blood"

	case strings.Contains(med, "metformin"):
		return "to help manage blood sugar levels in patients with diabetes"
	}

	switch {
	case strings.Contains(diag, "malaria"):
		return "to treat malaria infection and manage its associated symptoms"
	case strings.Contains(diag, "fever"):
		return "to reduce fever and provide symptomatic relief"
	case strings.Contains(diag, "infection"):
		return "to treat the " + diag + " and prevent complications"
	case diag != "":
		return "to treat " + diag + " and manage related symptoms"
	}

	return "as part of the treatment plan"
}
