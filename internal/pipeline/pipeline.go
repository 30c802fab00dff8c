package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/osadebe/claimsight/internal/extract"
	"github.com/osadebe/claimsight/internal/model"
	"github.com/osadebe/claimsight/internal/ocr"
	"github.com/osadebe/claimsight/internal/qa"
	"github.com/osadebe/claimsight/internal/store"
)

// Pipeline wires the document-processing components together: OCR
// orchestration, structured extraction, the claim store and the QA layer.
// The store is the only shared state; everything else is stateless, so a
// single Pipeline serves any number of concurrent requests.
type Pipeline struct {
	orchestrator *ocr.Orchestrator
	engine       *extract.Engine
	store        *store.ClaimStore
	answerer     *qa.Answerer
	log          zerolog.Logger
}

// NewPipeline creates a pipeline from the given configuration
func NewPipeline(cfg *model.Config, log zerolog.Logger) (*Pipeline, error) {
	provider, err := ocr.NewProvider(cfg.OCR)
	if err != nil {
		return nil, fmt.Errorf("configure OCR provider: %w", err)
	}

	st := store.NewClaimStore(cfg.Store, log)

	return &Pipeline{
		orchestrator: ocr.NewOrchestrator(provider, cfg, log),
		engine:       extract.NewEngine(),
		store:        st,
		answerer:     qa.NewAnswerer(st, qa.PolicyFromConfig(cfg.QA), log),
		log:          log.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Process runs one document through OCR and extraction, then commits the
// record. The record is inserted only after the full cycle completes; a
// request cancelled mid-flight never leaves a half-written record behind.
func (p *Pipeline) Process(ctx context.Context, data []byte, filename string) (*model.ClaimRecord, error) {
	ocrResult, err := p.orchestrator.Process(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	rec := p.engine.Extract(ocrResult.Text)
	rec.OCRMode = ocrResult.Mode

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := p.store.Put(rec); err != nil {
		return nil, fmt.Errorf("store claim: %w", err)
	}

	p.log.Info().
		Str("document_id", rec.DocumentID).
		Str("ocr_mode", string(rec.OCRMode)).
		Int("diagnoses", len(rec.Diagnoses)).
		Int("medications", len(rec.Medications)).
		Msg("Document processed")

	return rec, nil
}

// Ask answers a question about a stored document under the QA contract
func (p *Pipeline) Ask(ctx context.Context, documentID, question string) (string, error) {
	return p.answerer.Ask(ctx, documentID, question)
}

// Stats exposes the store snapshot for health/observability reporters
func (p *Pipeline) Stats() store.Stats {
	return p.store.Stats()
}

// ProviderName reports the configured OCR provider, "" when running in
// fallback-only mode
func (p *Pipeline) ProviderName() string {
	return p.orchestrator.ProviderName()
}

// ProviderAvailable probes the configured OCR provider
func (p *Pipeline) ProviderAvailable(ctx context.Context) bool {
	return p.orchestrator.ProviderAvailable(ctx)
}
