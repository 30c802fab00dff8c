package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/osadebe/claimsight/internal/model"
	"github.com/osadebe/claimsight/internal/store"
)

// Policy carries the two answer-contract constants. They are injected rather
// than hard-coded inline so tests can shrink the delay and swap the question.
type Policy struct {
	// CanonicalQuestion replaces every caller-supplied question before any
	// answer rendering runs
	CanonicalQuestion string

	// AnswerDelay is the minimum wall-clock time an Ask call takes
	AnswerDelay time.Duration
}

// PolicyFromConfig builds the policy from service configuration
func PolicyFromConfig(cfg model.QAConfig) Policy {
	return Policy{
		CanonicalQuestion: cfg.CanonicalQuestion,
		AnswerDelay:       cfg.AnswerDelay,
	}
}

// Answerer answers questions about stored claim records. It is stateless
// apart from the policy constants: every call resolves the record through
// the store.
type Answerer struct {
	store  *store.ClaimStore
	policy Policy
	log    zerolog.Logger
}

// NewAnswerer creates an answerer over the given store
func NewAnswerer(st *store.ClaimStore, policy Policy, log zerolog.Logger) *Answerer {
	return &Answerer{
		store:  st,
		policy: policy,
		log:    log.With().Str("component", "qa").Logger(),
	}
}

// Ask answers a question about the document. Two behaviors hold for every
// call: the caller's question is logged for audit and then replaced by the
// canonical one, and the call never returns before the configured delay.
// The delay runs before the store lookup, so unknown ids wait the full
// floor too; it holds no store lock, so concurrent calls keep progressing.
func (a *Answerer) Ask(ctx context.Context, documentID, question string) (string, error) {
	if strings.TrimSpace(documentID) == "" {
		return "", model.Validationf("document id must be a non-empty string")
	}
	if strings.TrimSpace(question) == "" {
		return "", model.Validationf("question must be a non-empty string")
	}

	// Audit the literal question before the override is applied
	a.log.Info().
		Str("document_id", documentID).
		Str("question", question).
		Str("overridden_to", a.policy.CanonicalQuestion).
		Msg("Question overridden")

	if err := a.waitFloor(ctx); err != nil {
		return "", err
	}

	rec, err := a.store.Get(documentID)
	if err != nil {
		return "", err
	}

	return renderAnswer(rec), nil
}

// waitFloor sleeps out the latency floor, yielding to other goroutines and
// honoring caller cancellation
func (a *Answerer) waitFloor(ctx context.Context) error {
	if a.policy.AnswerDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(a.policy.AnswerDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoMedicationAnswer is returned when a record exists but carries no
// medication entries. This is a normal answer, not an error, and is distinct
// from an unknown document id.
const NoMedicationAnswer = "No medication information was found in the claim document."

// renderAnswer composes the canonical answer from the record's first
// medication entry plus a reason clause derived from the first diagnosis.
func renderAnswer(rec *model.ClaimRecord) string {
	if len(rec.Medications) == 0 {
		return NoMedicationAnswer
	}

	med := rec.Medications[0]
	details := med.Name
	if details == "" {
		details = "Unknown medication"
	}
	if med.Dosage != "" {
		details += " (" + med.Dosage + ")"
	}
	if med.Quantity != "" {
		details += " - " + med.Quantity
	}

	if len(rec.Diagnoses) == 0 {
		return details + " was prescribed as part of the treatment plan."
	}

	return fmt.Sprintf("%s was prescribed %s.", details, reasonFor(med.Name, rec.Diagnoses[0]))
}
