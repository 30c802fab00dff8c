package ocr

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/osadebe/claimsight/internal/model"
)

// Result is the outcome of one OCR pass: the raw text and the mode that
// produced it. Mode is carried through the pipeline and stamped on the
// stored record exactly once.
type Result struct {
	Text string
	Mode model.OCRMode
}

// Orchestrator tries the configured provider and degrades to the canonical
// fallback payload on any kind of unavailability. Provider failure is never
// an error here; only pre-validation failures are returned to the caller.
type Orchestrator struct {
	provider Provider // nil when no provider is configured
	limiter  *rate.Limiter
	maxBytes int64
	log      zerolog.Logger
}

// NewOrchestrator creates an orchestrator around an optional provider
func NewOrchestrator(provider Provider, cfg *model.Config, log zerolog.Logger) *Orchestrator {
	rps := cfg.OCR.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.OCR.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Orchestrator{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		maxBytes: cfg.Limits.MaxUploadBytes,
		log:      log.With().Str("component", "ocr").Logger(),
	}
}

// ProviderName reports the configured provider, or "" in fallback-only mode
func (o *Orchestrator) ProviderName() string {
	if o.provider == nil {
		return ""
	}
	return o.provider.Name()
}

// ProviderAvailable probes the configured provider. False both when no
// provider is configured and when the probe fails.
func (o *Orchestrator) ProviderAvailable(ctx context.Context) bool {
	return o.provider != nil && o.provider.IsAvailable(ctx)
}

// Process validates the document and runs OCR. The returned error is only
// ever a validation error or a context cancellation; an unreachable, slow or
// malformed provider yields the fallback result instead.
func (o *Orchestrator) Process(ctx context.Context, data []byte, filename string) (*Result, error) {
	mimeType, err := ValidateDocument(data, filename, o.maxBytes)
	if err != nil {
		o.log.Warn().Str("file", filename).Err(err).Msg("Rejected document before OCR")
		return nil, err
	}

	if o.provider == nil {
		return o.fallback(filename, "no provider configured"), nil
	}

	// Politeness toward the provider endpoint; the wait respects caller
	// cancellation.
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	text, err := o.provider.Recognize(ctx, Request{
		Data:     data,
		Filename: filename,
		MIMEType: mimeType,
	})
	if err != nil {
		// A cancelled caller abandons the request rather than degrading
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return o.fallback(filename, err.Error()), nil
	}

	o.log.Info().
		Str("file", filename).
		Str("ocr_mode", string(model.ModeProvider)).
		Str("provider", o.provider.Name()).
		Msg("OCR completed via provider")

	return &Result{Text: text, Mode: model.ModeProvider}, nil
}

func (o *Orchestrator) fallback(filename, reason string) *Result {
	// Mode disclosure is required for operability: downstream consumers
	// must be able to tell synthesized content from real transcription.
	o.log.Warn().
		Str("file", filename).
		Str("ocr_mode", string(model.ModeFallback)).
		Str("payload", FallbackVersion).
		Str("reason", reason).
		Msg("OCR degraded to canonical fallback payload")

	return &Result{Text: FallbackText, Mode: model.ModeFallback}
}
