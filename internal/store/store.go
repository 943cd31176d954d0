// Package store provides abstractions and implementations for data persistence.
package store

import (
	"context"
	"database/sql"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/google/uuid"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// Returns validation errors if the deck data is invalid.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns all decks ordered by creation time.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Update saves changes to an existing deck (title, favorite flag,
	// shared recipients). Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck from the store by its ID.
	// Deleting a deck deletes the cards it owns; Postgres implementations
	// rely on ON DELETE CASCADE, memory implementations cascade explicitly.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DeckStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) DeckStore
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card to the store, assigning it the next position
	// in its deck. Returns ErrDeckNotFound if the owning deck is absent and
	// validation errors if the card data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// ListByDeck returns the cards belonging to a deck in insertion order.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// Update saves changes to an existing card's front and back.
	// The card keeps its position. Returns ErrCardNotFound if absent.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from the store by its ID. Remaining cards in
	// the deck are never renumbered. Returns ErrCardNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CardStore
}
