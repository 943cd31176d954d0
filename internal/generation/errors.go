package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when pair generation fails for any
	// general reason.
	ErrGenerationFailed = errors.New("failed to generate question/answer pairs")

	// ErrInvalidResponse is returned when a model response cannot be
	// parsed or is malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrTransientFailure is returned for temporary errors that might
	// resolve on retry with the same input.
	ErrTransientFailure = errors.New("transient error during pair generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
