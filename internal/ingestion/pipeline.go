// Package ingestion turns an uploaded document into an ordered batch of
// question/answer pairs. One Generate call is one pipeline run:
// validate, extract, generate, done. The pipeline keeps no state between
// runs and exposes a single suspension point to its caller.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GarethNobleLFG/brainflip/internal/generation"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
)

// MaxRequestedCount caps how many pairs one request may ask for.
const MaxRequestedCount = 50

// DocumentExtractor parses text content out of an uploaded document.
type DocumentExtractor interface {
	// ExtractText returns the document's text content. It returns an error
	// when the document is corrupt, encrypted, or otherwise unparseable.
	ExtractText(ctx context.Context, document []byte) (string, error)
}

// Request is one ingestion request: a source document plus how many pairs
// the caller wants.
type Request struct {
	Document       []byte
	RequestedCount int
}

// Pipeline wires the extractor and generator into the ingestion flow.
type Pipeline struct {
	extractor DocumentExtractor
	generator generation.Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewPipeline creates a Pipeline. Timeout bounds one whole Generate call;
// expiry surfaces as ErrGenerationUnavailable.
func NewPipeline(
	extractor DocumentExtractor,
	generator generation.Generator,
	timeout time.Duration,
	log *slog.Logger,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, errors.New("extractor cannot be nil")
	}
	if generator == nil {
		return nil, errors.New("generator cannot be nil")
	}
	if timeout <= 0 {
		return nil, errors.New("timeout must be positive")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Pipeline{
		extractor: extractor,
		generator: generator,
		timeout:   timeout,
		logger:    log.With(slog.String("component", "ingestion_pipeline")),
	}, nil
}

// Generate runs the full pipeline for one request and returns the derived
// pairs in order. Fewer pairs than requested is success, not an error.
//
// Error contract: ErrInvalidRequest before any parsing,
// ErrUnreadableDocument when extraction fails or yields nothing,
// ErrGenerationUnavailable when the generator fails or the run times out.
func (p *Pipeline) Generate(ctx context.Context, req Request) ([]generation.QAPair, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	// Received: validate before touching the document.
	if len(req.Document) == 0 {
		return nil, fmt.Errorf("%w: document is required", ErrInvalidRequest)
	}
	if req.RequestedCount < 1 || req.RequestedCount > MaxRequestedCount {
		return nil, fmt.Errorf("%w: requested count must be between 1 and %d, got %d",
			ErrInvalidRequest, MaxRequestedCount, req.RequestedCount)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// Extracting.
	log.Debug("extracting document text",
		slog.Int("document_bytes", len(req.Document)),
		slog.Int("requested_count", req.RequestedCount))

	text, err := p.extractor.ExtractText(ctx, req.Document)
	if err != nil {
		if isTimeout(ctx, err) {
			log.Warn("extraction timed out", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: extraction timed out", ErrGenerationUnavailable)
		}
		log.Warn("document extraction failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	if strings.TrimSpace(text) == "" {
		log.Warn("document yielded no text")
		return nil, fmt.Errorf("%w: no extractable text", ErrUnreadableDocument)
	}

	// Generating.
	log.Debug("generating pairs", slog.Int("text_length", len(text)))

	pairs, err := p.generator.GenerateQAPairs(ctx, text, req.RequestedCount)
	if err != nil {
		log.Warn("pair generation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}

	// Generators may overshoot the requested count; trim to it.
	if len(pairs) > req.RequestedCount {
		pairs = pairs[:req.RequestedCount]
	}

	// Completed.
	log.Info("ingestion completed",
		slog.Int("requested_count", req.RequestedCount),
		slog.Int("generated_count", len(pairs)))
	return pairs, nil
}

// isTimeout reports whether err stems from the pipeline deadline rather
// than the document itself.
func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}
