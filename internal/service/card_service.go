package service

import (
	"context"
	"log/slog"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/generation"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
	"github.com/GarethNobleLFG/brainflip/internal/store"
	"github.com/google/uuid"
)

// CardService provides card operations scoped to a deck.
type CardService interface {
	// AddCard creates a card in the deck. Fails with a domain validation
	// error when front and back are both empty after trimming, and with
	// ErrDeckNotFound when the deck is absent.
	AddCard(ctx context.Context, deckID uuid.UUID, front, back string) (*domain.Card, error)

	// EditCard replaces whichever supplied sides of the card (nil leaves a
	// side untouched). Fails with ErrCardNotFound when the card does not
	// belong to the deck.
	EditCard(ctx context.Context, deckID, cardID uuid.UUID, front, back *string) (*domain.Card, error)

	// DeleteCard removes the card from its deck.
	// Fails with ErrCardNotFound when the card does not belong to the deck.
	DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error

	// ListCards returns the deck's cards in insertion order.
	ListCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// ImportBatch adds one card per pair, in order, question as front and
	// answer as back. Each add is independent: a failure is recorded for
	// that pair and the rest continue. The only whole-batch failure is an
	// absent deck.
	ImportBatch(ctx context.Context, deckID uuid.UUID, pairs []generation.QAPair) ([]ImportResult, error)
}

// ImportResult reports the outcome of one pair within an ImportBatch call.
type ImportResult struct {
	Index int
	Card  *domain.Card
	Err   error
}

// cardServiceImpl implements the CardService interface.
type cardServiceImpl struct {
	cardStore store.CardStore
	deckStore store.DeckStore
	locks     *deckLocks
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// The locks argument serializes mutations per deck; passing the same
// instance to NewDeckService keeps deck and card mutations on one lock.
func NewCardService(
	cardStore store.CardStore,
	deckStore store.DeckStore,
	locks *deckLocks,
	log *slog.Logger,
) CardService {
	if cardStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardStore cannot be nil")
	}
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil")
	}
	if locks == nil {
		locks = newDeckLocks()
	}
	if log == nil {
		log = slog.Default()
	}

	return &cardServiceImpl{
		cardStore: cardStore,
		deckStore: deckStore,
		locks:     locks,
		logger:    log.With(slog.String("component", "card_service")),
	}
}

func (s *cardServiceImpl) AddCard(ctx context.Context, deckID uuid.UUID, front, back string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.lock(deckID)
	defer unlock()

	if _, err := s.deckStore.GetByID(ctx, deckID); err != nil {
		return nil, newServiceError("add_card", "failed to load deck", err)
	}

	card, err := domain.NewCard(deckID, front, back)
	if err != nil {
		return nil, newServiceError("add_card", "invalid card", err)
	}

	if err := s.cardStore.Create(ctx, card); err != nil {
		return nil, newServiceError("add_card", "failed to persist card", err)
	}

	log.Debug("card added",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	return card, nil
}

func (s *cardServiceImpl) EditCard(ctx context.Context, deckID, cardID uuid.UUID, front, back *string) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.lock(deckID)
	defer unlock()

	card, err := s.getDeckCard(ctx, deckID, cardID)
	if err != nil {
		return nil, err
	}

	if err := card.UpdateSides(front, back); err != nil {
		return nil, newServiceError("edit_card", "invalid card content", err)
	}

	if err := s.cardStore.Update(ctx, card); err != nil {
		return nil, newServiceError("edit_card", "failed to persist card", err)
	}

	log.Debug("card edited",
		slog.String("card_id", cardID.String()),
		slog.String("deck_id", deckID.String()))
	return card, nil
}

func (s *cardServiceImpl) DeleteCard(ctx context.Context, deckID, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.lock(deckID)
	defer unlock()

	if _, err := s.getDeckCard(ctx, deckID, cardID); err != nil {
		return err
	}

	if err := s.cardStore.Delete(ctx, cardID); err != nil {
		return newServiceError("delete_card", "failed to delete card", err)
	}

	log.Debug("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("deck_id", deckID.String()))
	return nil
}

func (s *cardServiceImpl) ListCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	cards, err := s.cardStore.ListByDeck(ctx, deckID)
	if err != nil {
		return nil, newServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

func (s *cardServiceImpl) ImportBatch(ctx context.Context, deckID uuid.UUID, pairs []generation.QAPair) ([]ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.deckStore.GetByID(ctx, deckID); err != nil {
		return nil, newServiceError("import_batch", "failed to load deck", err)
	}

	results := make([]ImportResult, 0, len(pairs))
	failed := 0
	for i, pair := range pairs {
		card, err := s.AddCard(ctx, deckID, pair.Question, pair.Answer)
		if err != nil {
			failed++
			results = append(results, ImportResult{Index: i, Err: err})
			continue
		}
		results = append(results, ImportResult{Index: i, Card: card})
	}

	log.Info("batch import finished",
		slog.String("deck_id", deckID.String()),
		slog.Int("total", len(pairs)),
		slog.Int("failed", failed))
	return results, nil
}

// getDeckCard loads a card and checks deck membership. A card that exists
// under a different deck reports ErrCardNotFound just like an absent one.
func (s *cardServiceImpl) getDeckCard(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.GetByID(ctx, cardID)
	if err != nil {
		return nil, newServiceError("get_card", "failed to load card", err)
	}
	if card.DeckID != deckID {
		return nil, ErrCardNotFound
	}
	return card, nil
}
