package ingestion

import "errors"

// Errors returned by the ingestion pipeline. The unreadable/unavailable
// distinction matters to callers: an unreadable document needs a new
// upload, an unavailable generator is safe to retry with the same input.
var (
	// ErrInvalidRequest is returned when the request fails validation
	// (missing document, count outside [1, MaxRequestedCount]) before any
	// parsing is attempted.
	ErrInvalidRequest = errors.New("invalid ingestion request")

	// ErrUnreadableDocument is returned when the document cannot be parsed
	// or yields no extractable text. Fatal for this upload.
	ErrUnreadableDocument = errors.New("document cannot be read")

	// ErrGenerationUnavailable is returned when the generation capability
	// fails or the pipeline times out. Transient; retrying with the same
	// input is safe.
	ErrGenerationUnavailable = errors.New("card generation temporarily unavailable")
)
