package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/osadebe/claimsight/internal/model"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.QA.AnswerDelay = 10 * time.Millisecond
	p, err := NewPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	return p
}

func TestPipeline_ProcessFallbackDocument(t *testing.T) {
	p := newTestPipeline(t)

	rec, err := p.Process(context.Background(), pngBytes, "claim.png")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if rec.DocumentID == "" {
		t.Error("Expected a document id")
	}
	if rec.OCRMode != model.ModeFallback {
		t.Errorf("Expected ocr_mode fallback, got %q", rec.OCRMode)
	}
	if rec.Patient.Name != "Jane Doe" || rec.Patient.Age != 34 {
		t.Errorf("Unexpected patient: %+v", rec.Patient)
	}
	if len(rec.Diagnoses) != 1 || rec.Diagnoses[0] != "Malaria" {
		t.Errorf("Unexpected diagnoses: %v", rec.Diagnoses)
	}
	if len(rec.Medications) != 1 {
		t.Fatalf("Expected exactly one medication, got %v", rec.Medications)
	}
	if rec.Medications[0].Name != "Paracetamol" {
		t.Errorf("Unexpected medication: %+v", rec.Medications[0])
	}
	if !rec.Admission.WasAdmitted {
		t.Error("Expected an admission")
	}
	if rec.TotalAmount != "₦15,000.00" {
		t.Errorf("Unexpected total amount %q", rec.TotalAmount)
	}
}

func TestPipeline_ProcessThenAsk(t *testing.T) {
	p := newTestPipeline(t)

	rec, err := p.Process(context.Background(), pngBytes, "claim.png")
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	answer, err := p.Ask(context.Background(), rec.DocumentID, "Was the patient admitted?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	want := "Paracetamol (500mg) - 10 tablets was prescribed " +
		"to reduce fever and alleviate pain associated with malaria infection."
	if answer != want {
		t.Errorf("Expected %q, got %q", want, answer)
	}
}

func TestPipeline_AskUnknownDocument(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.Ask(context.Background(), "no-such-document", "What medication is used and why?")
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPipeline_RejectsInvalidDocument(t *testing.T) {
	p := newTestPipeline(t)

	_, err := p.Process(context.Background(), []byte("not an image"), "claim.txt")
	if !model.IsValidation(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if stats := p.Stats(); stats.Count != 0 {
		t.Errorf("Expected nothing stored after a rejected document, got %d", stats.Count)
	}
}

func TestPipeline_Stats(t *testing.T) {
	p := newTestPipeline(t)

	for i := 0; i < 3; i++ {
		if _, err := p.Process(context.Background(), pngBytes, "claim.png"); err != nil {
			t.Fatalf("Process failed: %v", err)
		}
	}

	stats := p.Stats()
	if stats.Count != 3 || stats.Processed != 3 {
		t.Errorf("Expected 3 records, got %+v", stats)
	}
}

func TestPipeline_FallbackOnlyProvider(t *testing.T) {
	p := newTestPipeline(t)

	if name := p.ProviderName(); name != "" {
		t.Errorf("Expected no provider by default, got %q", name)
	}
	if p.ProviderAvailable(context.Background()) {
		t.Error("Expected provider unavailable in fallback-only mode")
	}
}

func TestPipeline_UnknownProviderRejected(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.OCR.Provider = "tesseract"

	if _, err := NewPipeline(cfg, zerolog.Nop()); err == nil {
		t.Fatal("Expected error for unknown OCR provider")
	}
}
