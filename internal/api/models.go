package api

import (
	"time"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/generation"
)

// Common request/response structures

// DeckResponse represents the response data for a deck.
type DeckResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	IsFavorite bool      `json:"isFavorite"`
	SharedWith []string  `json:"sharedWith"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CardResponse represents the response data for a card.
type CardResponse struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDeckRequest defines the payload for creating a deck.
type CreateDeckRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

// RenameDeckRequest defines the payload for renaming a deck.
type RenameDeckRequest struct {
	Title string `json:"title" validate:"required,min=1"`
}

// ShareDeckRequest defines the payload for sharing a deck.
type ShareDeckRequest struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
}

// DeckEnvelope wraps a deck for mutation responses.
type DeckEnvelope struct {
	Deck DeckResponse `json:"deck"`
}

// ShareDeckResponse carries the persisted deck plus the invite token.
type ShareDeckResponse struct {
	Deck       DeckResponse `json:"deck"`
	ShareToken string       `json:"shareToken"`
}

// CreateCardRequest defines the payload for adding a card to a deck.
type CreateCardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// UpdateCardRequest defines the payload for editing a card. Omitted
// fields leave the corresponding side untouched.
type UpdateCardRequest struct {
	Front *string `json:"front"`
	Back  *string `json:"back"`
}

// Flashcard is one question/answer pair on the wire.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FlashcardsResponse is the body returned by the generation endpoint.
type FlashcardsResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
}

// ImportCardsRequest defines the payload for a batch card import.
type ImportCardsRequest struct {
	Cards []Flashcard `json:"cards" validate:"required,min=1,dive"`
}

// ImportItemResult reports the outcome of one imported pair.
type ImportItemResult struct {
	Index int           `json:"index"`
	Card  *CardResponse `json:"card,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ImportCardsResponse carries per-item results for a batch import.
type ImportCardsResponse struct {
	Imported int                `json:"imported"`
	Failed   int                `json:"failed"`
	Results  []ImportItemResult `json:"results"`
}

func deckToResponse(deck *domain.Deck) DeckResponse {
	shared := deck.SharedWith
	if shared == nil {
		shared = []string{}
	}
	return DeckResponse{
		ID:         deck.ID.String(),
		Title:      deck.Title,
		IsFavorite: deck.IsFavorite,
		SharedWith: shared,
		CreatedAt:  deck.CreatedAt,
		UpdatedAt:  deck.UpdatedAt,
	}
}

func cardToResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:        card.ID.String(),
		DeckID:    card.DeckID.String(),
		Front:     card.Front,
		Back:      card.Back,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

func pairsToFlashcards(pairs []generation.QAPair) []Flashcard {
	cards := make([]Flashcard, 0, len(pairs))
	for _, pair := range pairs {
		cards = append(cards, Flashcard{Question: pair.Question, Answer: pair.Answer})
	}
	return cards
}
