// Package pdf implements document text extraction for the ingestion
// pipeline. Uploads are validated structurally with pdfcpu before page
// text is pulled out with go-fitz (MuPDF).
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GarethNobleLFG/brainflip/internal/ingestion"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Extractor extracts text from PDF documents held in memory.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor. If log is nil, the default logger is used.
func NewExtractor(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{
		logger: log.With(slog.String("component", "pdf_extractor")),
	}
}

var _ ingestion.DocumentExtractor = (*Extractor)(nil)

// ExtractText implements ingestion.DocumentExtractor. It returns the
// concatenated page text of the document, or an error when the document is
// corrupt, encrypted, or otherwise unparseable. The pipeline maps any
// error from here to its unreadable-document condition.
func (e *Extractor) ExtractText(ctx context.Context, document []byte) (string, error) {
	log := logger.FromContextOrDefault(ctx, e.logger)

	// Structural validation first: pdfcpu rejects corrupt and encrypted
	// files with a much clearer error than a mid-extraction failure.
	if err := api.Validate(bytes.NewReader(document), nil); err != nil {
		log.Warn("pdf validation failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("invalid PDF document: %w", err)
	}

	doc, err := fitz.NewFromMemory(document)
	if err != nil {
		log.Warn("failed to open pdf", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() {
		if closeErr := doc.Close(); closeErr != nil {
			log.Warn("failed to close pdf document", slog.String("error", closeErr.Error()))
		}
	}()

	var builder strings.Builder

	// Page numbers are zero indexed in the fitz package.
	for pageNum := 0; pageNum < doc.NumPage(); pageNum++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		text, err := doc.Text(pageNum)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
		}

		builder.WriteString(text)
		builder.WriteString("\n")
	}

	log.Debug("extracted document text",
		slog.Int("pages", doc.NumPage()),
		slog.Int("text_length", builder.Len()))

	return builder.String(), nil
}
