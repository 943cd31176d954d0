package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GarethNobleLFG/brainflip/internal/api/shared"
	"github.com/GarethNobleLFG/brainflip/internal/ingestion"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
)

// GenerateHandler handles PDF-to-flashcard generation requests.
type GenerateHandler struct {
	pipeline       *ingestion.Pipeline
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewGenerateHandler creates a new GenerateHandler. maxUploadBytes caps
// the accepted request body size.
func NewGenerateHandler(pipeline *ingestion.Pipeline, maxUploadBytes int64, log *slog.Logger) *GenerateHandler {
	if pipeline == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("pipeline cannot be nil for GenerateHandler")
	}
	if maxUploadBytes <= 0 {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("maxUploadBytes must be positive for GenerateHandler")
	}
	if log == nil {
		log = slog.Default()
	}

	return &GenerateHandler{
		pipeline:       pipeline,
		maxUploadBytes: maxUploadBytes,
		logger:         log.With(slog.String("component", "generate_handler")),
	}
}

// GenerateFlashcards handles POST /api/cards/generate requests. The body
// is multipart form data with a "pdf" file part and a "numFlashcards"
// field.
func (h *GenerateHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Request must be multipart form data")
		return
	}

	count, err := strconv.Atoi(r.FormValue("numFlashcards"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "numFlashcards must be an integer")
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "A pdf file is required")
		return
	}
	defer func() { _ = file.Close() }()

	document, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	log.Info("generation requested",
		slog.String("filename", header.Filename),
		slog.Int("size_bytes", len(document)),
		slog.Int("requested_count", count))

	pairs, err := h.pipeline.Generate(r.Context(), ingestion.Request{
		Document:       document,
		RequestedCount: count,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardsResponse{
		Flashcards: pairsToFlashcards(pairs),
	})
}
