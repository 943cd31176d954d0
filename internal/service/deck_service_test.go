package service

import (
	"context"
	"testing"
	"time"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/platform/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenTTL = 15 * time.Minute

func newDeckFixture(t *testing.T) (DeckService, CardService, *ShareTokenIssuer) {
	t.Helper()

	mem := memory.NewStore()
	locks := SharedLocks()
	tokens, err := NewShareTokenIssuer("0123456789abcdef0123456789abcdef", testTokenTTL)
	require.NoError(t, err)

	decks := NewDeckService(mem.DeckStore(), tokens, locks, nil)
	cards := NewCardService(mem.CardStore(), mem.DeckStore(), locks, nil)
	return decks, cards, tokens
}

func TestCreateDeck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, _, _ := newDeckFixture(t)

	t.Run("creates deck with defaults", func(t *testing.T) {
		deck, err := decks.CreateDeck(ctx, "Spanish Vocab")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, deck.ID)
		assert.Equal(t, "Spanish Vocab", deck.Title)
		assert.False(t, deck.IsFavorite)
		assert.Empty(t, deck.SharedWith)

		got, err := decks.GetDeck(ctx, deck.ID)
		require.NoError(t, err)
		assert.Equal(t, deck.ID, got.ID)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := decks.CreateDeck(ctx, "   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDeckTitleEmpty)
	})
}

func TestListDecksOldestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, _, _ := newDeckFixture(t)

	titles := []string{"one", "two", "three"}
	for _, title := range titles {
		_, err := decks.CreateDeck(ctx, title)
		require.NoError(t, err)
	}

	listed, err := decks.ListDecks(ctx)
	require.NoError(t, err)
	require.Len(t, listed, len(titles))
	for i, deck := range listed {
		assert.Equal(t, titles[i], deck.Title)
	}
}

func TestRenameDeck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, _, _ := newDeckFixture(t)

	deck, err := decks.CreateDeck(ctx, "Draft")
	require.NoError(t, err)

	renamed, err := decks.RenameDeck(ctx, deck.ID, "Final")
	require.NoError(t, err)
	assert.Equal(t, "Final", renamed.Title)

	got, err := decks.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)

	_, err = decks.RenameDeck(ctx, uuid.New(), "Nope")
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestDeleteDeckCascadesToCards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, cards, _ := newDeckFixture(t)

	deck, err := decks.CreateDeck(ctx, "Doomed")
	require.NoError(t, err)
	card, err := cards.AddCard(ctx, deck.ID, "front", "back")
	require.NoError(t, err)

	require.NoError(t, decks.DeleteDeck(ctx, deck.ID))

	_, err = decks.GetDeck(ctx, deck.ID)
	assert.ErrorIs(t, err, ErrDeckNotFound)

	_, err = cards.EditCard(ctx, deck.ID, card.ID, nil, nil)
	assert.ErrorIs(t, err, ErrCardNotFound)

	err = decks.DeleteDeck(ctx, deck.ID)
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, _, _ := newDeckFixture(t)

	deck, err := decks.CreateDeck(ctx, "Starred")
	require.NoError(t, err)
	require.False(t, deck.IsFavorite)

	toggled, err := decks.ToggleFavorite(ctx, deck.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	// A second toggle returns to the original state.
	toggled, err = decks.ToggleFavorite(ctx, deck.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)

	got, err := decks.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorite)

	_, err = decks.ToggleFavorite(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestShareDeck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, _, tokens := newDeckFixture(t)

	deck, err := decks.CreateDeck(ctx, "Shared Notes")
	require.NoError(t, err)

	t.Run("adds recipient and issues verifiable token", func(t *testing.T) {
		shared, token, err := decks.ShareDeck(ctx, deck.ID, "friend@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"friend@example.com"}, shared.SharedWith)

		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, deck.ID.String(), claims.DeckID)
		assert.Equal(t, "friend@example.com", claims.Recipient)
	})

	t.Run("sharing twice keeps one entry but still issues a token", func(t *testing.T) {
		shared, token, err := decks.ShareDeck(ctx, deck.ID, "FRIEND@example.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"friend@example.com"}, shared.SharedWith)
		assert.NotEmpty(t, token)
	})

	t.Run("rejects malformed address", func(t *testing.T) {
		_, _, err := decks.ShareDeck(ctx, deck.ID, "not-an-email")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})

	t.Run("fails for absent deck", func(t *testing.T) {
		_, _, err := decks.ShareDeck(ctx, uuid.New(), "friend@example.com")
		assert.ErrorIs(t, err, ErrDeckNotFound)
	})
}

func TestConcurrentTogglesSerialize(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	decks, _, _ := newDeckFixture(t)

	deck, err := decks.CreateDeck(ctx, "Contended")
	require.NoError(t, err)

	const toggles = 10
	done := make(chan error, toggles)
	for i := 0; i < toggles; i++ {
		go func() {
			_, err := decks.ToggleFavorite(ctx, deck.ID)
			done <- err
		}()
	}
	for i := 0; i < toggles; i++ {
		require.NoError(t, <-done)
	}

	// An even number of serialized toggles lands back on the start state.
	got, err := decks.GetDeck(ctx, deck.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorite)
}
