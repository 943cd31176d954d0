package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckTitleEmpty is returned when a deck's title is empty after trimming.
	ErrDeckTitleEmpty = errors.New("deck title cannot be empty")
)

// emailPattern is the shape check applied to share recipients. It is
// deliberately loose; deliverability is the mailer's problem, not ours.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Deck represents a named collection of flashcards. SharedWith holds the
// recipients the deck has been shared with, deduplicated by address;
// sharing is append-only, there is no revoke.
type Deck struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	IsFavorite bool      `json:"is_favorite"`
	SharedWith []string  `json:"shared_with"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck with the given title.
// It generates a new UUID for the deck ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewDeck(title string) (*Deck, error) {
	deck := &Deck{
		ID:         uuid.New(),
		Title:      title,
		IsFavorite: false,
		SharedWith: []string{},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if strings.TrimSpace(d.Title) == "" {
		return ErrDeckTitleEmpty
	}

	return nil
}

// Rename replaces the deck's title. Returns an error if the new title is
// empty after trimming, leaving the deck unchanged.
func (d *Deck) Rename(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrDeckTitleEmpty
	}

	d.Title = title
	d.UpdatedAt = time.Now().UTC()
	return nil
}

// ToggleFavorite flips the deck's favorite flag. The caller must treat the
// returned persisted state as authoritative; re-sending a toggle after a
// lost acknowledgment flips again.
func (d *Deck) ToggleFavorite() {
	d.IsFavorite = !d.IsFavorite
	d.UpdatedAt = time.Now().UTC()
}

// ShareWith appends recipient to SharedWith unless it is already present.
// Addresses are compared case-insensitively. Returns ErrInvalidEmail if the
// recipient is not email-shaped, and reports whether the set changed.
func (d *Deck) ShareWith(recipient string) (bool, error) {
	recipient = strings.TrimSpace(recipient)
	if !emailPattern.MatchString(recipient) {
		return false, ErrInvalidEmail
	}

	for _, existing := range d.SharedWith {
		if strings.EqualFold(existing, recipient) {
			return false, nil
		}
	}

	d.SharedWith = append(d.SharedWith, recipient)
	d.UpdatedAt = time.Now().UTC()
	return true, nil
}
