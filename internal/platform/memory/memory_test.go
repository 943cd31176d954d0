package memory

import (
	"context"
	"testing"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeckWithCards(t *testing.T, s *Store, title string, fronts ...string) (*domain.Deck, []*domain.Card) {
	t.Helper()
	ctx := context.Background()

	deck, err := domain.NewDeck(title)
	require.NoError(t, err)
	require.NoError(t, s.DeckStore().Create(ctx, deck))

	var cards []*domain.Card
	for _, front := range fronts {
		card, err := domain.NewCard(deck.ID, front, "answer to "+front)
		require.NoError(t, err)
		require.NoError(t, s.CardStore().Create(ctx, card))
		cards = append(cards, card)
	}
	return deck, cards
}

func TestCardInsertionOrderAndPositions(t *testing.T) {
	s := NewStore()
	deck, created := newDeckWithCards(t, s, "Geography", "Q1", "Q2", "Q3")

	cards, err := s.CardStore().ListByDeck(context.Background(), deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	for i, card := range cards {
		assert.Equal(t, created[i].ID, card.ID)
		assert.Equal(t, i, card.Position)
	}
}

func TestDeleteKeepsSurvivorPositions(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	deck, created := newDeckWithCards(t, s, "Geography", "Q1", "Q2", "Q3")

	require.NoError(t, s.CardStore().Delete(ctx, created[1].ID))

	cards, err := s.CardStore().ListByDeck(ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	// Survivors keep the positions they were assigned at insertion.
	assert.Equal(t, 0, cards[0].Position)
	assert.Equal(t, 2, cards[1].Position)

	// A fresh insert continues the sequence rather than reusing position 1.
	card, err := domain.NewCard(deck.ID, "Q4", "A4")
	require.NoError(t, err)
	require.NoError(t, s.CardStore().Create(ctx, card))
	assert.Equal(t, 3, card.Position)
}

func TestDeckDeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	deck, created := newDeckWithCards(t, s, "Doomed", "Q1", "Q2")

	require.NoError(t, s.DeckStore().Delete(ctx, deck.ID))

	_, err := s.DeckStore().GetByID(ctx, deck.ID)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)

	for _, card := range created {
		_, err := s.CardStore().GetByID(ctx, card.ID)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	}
}

func TestCreateCardInAbsentDeck(t *testing.T) {
	s := NewStore()

	card, err := domain.NewCard(uuid.New(), "Q", "A")
	require.NoError(t, err)

	err = s.CardStore().Create(context.Background(), card)
	assert.ErrorIs(t, err, store.ErrDeckNotFound)
}

func TestUpdateAbsentEntities(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	deck, err := domain.NewDeck("Ghost")
	require.NoError(t, err)
	assert.ErrorIs(t, s.DeckStore().Update(ctx, deck), store.ErrDeckNotFound)

	card, err := domain.NewCard(uuid.New(), "Q", "A")
	require.NoError(t, err)
	assert.ErrorIs(t, s.CardStore().Update(ctx, card), store.ErrCardNotFound)
}

func TestDeckUpdateRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	deck, _ := newDeckWithCards(t, s, "Mutable")

	deck.ToggleFavorite()
	_, err := deck.ShareWith("friend@example.com")
	require.NoError(t, err)
	require.NoError(t, s.DeckStore().Update(ctx, deck))

	stored, err := s.DeckStore().GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFavorite)
	assert.Equal(t, []string{"friend@example.com"}, stored.SharedWith)
}
