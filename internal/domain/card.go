package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardContentEmpty is returned when both sides of a card are empty
	// after trimming whitespace.
	ErrCardContentEmpty = errors.New("card front and back cannot both be empty")
)

// Card represents a single flashcard belonging to exactly one deck.
// Front holds the question side and Back holds the answer side.
// Position records insertion order within the owning deck and is never
// reassigned when sibling cards are removed.
type Card struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a new Card with the given deck ID, front, and back.
// It generates a new UUID for the card ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewCard(deckID uuid.UUID, front, back string) (*Card, error) {
	card := &Card{
		ID:        uuid.New(),
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// A card persists only when at least one side carries text after trimming;
// the editing client may hold transient empty state, the server never does.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if strings.TrimSpace(c.Front) == "" && strings.TrimSpace(c.Back) == "" {
		return ErrCardContentEmpty
	}

	return nil
}

// UpdateSides replaces the card's front and/or back. A nil pointer leaves
// the corresponding side untouched; a non-nil pointer replaces it wholesale.
// Returns an error if the result would fail validation, leaving the card
// unchanged in that case.
func (c *Card) UpdateSides(front, back *string) error {
	origFront, origBack := c.Front, c.Back

	if front != nil {
		c.Front = *front
	}
	if back != nil {
		c.Back = *back
	}

	if err := c.Validate(); err != nil {
		c.Front, c.Back = origFront, origBack
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}
