package api

import (
	"errors"
	"net/http"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/ingestion"
	"github.com/GarethNobleLFG/brainflip/internal/service"
	"github.com/GarethNobleLFG/brainflip/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrCardContentEmpty),
		errors.Is(err, domain.ErrDeckTitleEmpty),
		errors.Is(err, ingestion.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Not found errors
	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Document could not be read as a PDF
	case errors.Is(err, ingestion.ErrUnreadableDocument):
		return http.StatusUnprocessableEntity

	// Transient upstream failures; safe to retry
	case errors.Is(err, ingestion.ErrGenerationUnavailable),
		errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrInvalidEmail):
		return "Invalid recipient email address"

	case errors.Is(err, domain.ErrCardContentEmpty):
		return "Card front and back cannot both be empty"

	case errors.Is(err, domain.ErrDeckTitleEmpty):
		return "Deck title cannot be empty"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, ingestion.ErrInvalidRequest):
		return "Invalid generation request"

	case errors.Is(err, service.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, service.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, ingestion.ErrUnreadableDocument):
		return "The uploaded document could not be read as a PDF"

	case errors.Is(err, ingestion.ErrGenerationUnavailable):
		return "Flashcard generation is temporarily unavailable, please retry"

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable, please retry"

	default:
		return "An unexpected error occurred"
	}
}
