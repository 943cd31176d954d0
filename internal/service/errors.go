// Package service implements the application's business operations over
// the store interfaces.
package service

import (
	"errors"
	"fmt"

	"github.com/GarethNobleLFG/brainflip/internal/store"
)

// Common sentinel errors for the service layer.
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrCardNotFound indicates that the card does not exist in the deck.
	ErrCardNotFound = errors.New("card not found")
)

// ServiceError wraps errors from the service layer with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "add_card", "share_deck")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// newServiceError creates a ServiceError, mapping store-level sentinels to
// the service-level ones so callers only deal with one vocabulary.
// Domain validation errors and store connectivity errors pass through
// unchanged for the API layer to classify.
func newServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrDeckNotFound) || errors.Is(err, store.ErrDeckNotFound) {
		return ErrDeckNotFound
	}
	if errors.Is(err, ErrCardNotFound) || errors.Is(err, store.ErrCardNotFound) {
		return ErrCardNotFound
	}
	if errors.Is(err, store.ErrUnavailable) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
