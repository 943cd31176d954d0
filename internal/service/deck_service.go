package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
	"github.com/GarethNobleLFG/brainflip/internal/store"
	"github.com/google/uuid"
)

// DeckService provides deck operations. Toggle and share are
// server-authoritative: every mutation returns the persisted deck, and
// clients reconcile against that instead of trusting optimistic state.
type DeckService interface {
	// CreateDeck creates a new deck with the given title.
	CreateDeck(ctx context.Context, title string) (*domain.Deck, error)

	// GetDeck retrieves a deck by ID. Fails with ErrDeckNotFound if absent.
	GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)

	// ListDecks returns all decks, oldest first.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// RenameDeck replaces the deck's title.
	RenameDeck(ctx context.Context, deckID uuid.UUID, title string) (*domain.Deck, error)

	// DeleteDeck removes the deck and every card it owns.
	DeleteDeck(ctx context.Context, deckID uuid.UUID) error

	// ToggleFavorite flips the deck's favorite flag and returns the
	// persisted deck. Retrying after a lost acknowledgment flips again;
	// callers must reconcile against the returned state.
	ToggleFavorite(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)

	// ShareDeck validates the recipient address, appends it to the deck's
	// shared set when absent (dedup by address), and returns the persisted
	// deck plus a signed share-invite token for the recipient.
	ShareDeck(ctx context.Context, deckID uuid.UUID, recipient string) (*domain.Deck, string, error)
}

// deckServiceImpl implements the DeckService interface.
type deckServiceImpl struct {
	deckStore store.DeckStore
	tokens    *ShareTokenIssuer
	locks     *deckLocks
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService. Pass the same deckLocks
// instance used by the card service so deck-level and card-level mutations
// of one deck serialize on the same lock.
func NewDeckService(
	deckStore store.DeckStore,
	tokens *ShareTokenIssuer,
	locks *deckLocks,
	log *slog.Logger,
) DeckService {
	if deckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deckStore cannot be nil")
	}
	if tokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("tokens cannot be nil")
	}
	if locks == nil {
		locks = newDeckLocks()
	}
	if log == nil {
		log = slog.Default()
	}

	return &deckServiceImpl{
		deckStore: deckStore,
		tokens:    tokens,
		locks:     locks,
		logger:    log.With(slog.String("component", "deck_service")),
	}
}

// SharedLocks returns a lock set for wiring card and deck services together.
func SharedLocks() *deckLocks {
	return newDeckLocks()
}

func (s *deckServiceImpl) CreateDeck(ctx context.Context, title string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(title)
	if err != nil {
		return nil, newServiceError("create_deck", "invalid deck", err)
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		return nil, newServiceError("create_deck", "failed to persist deck", err)
	}

	log.Info("deck created", slog.String("deck_id", deck.ID.String()))
	return deck, nil
}

func (s *deckServiceImpl) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, newServiceError("get_deck", "failed to load deck", err)
	}
	return deck, nil
}

func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks, err := s.deckStore.List(ctx)
	if err != nil {
		return nil, newServiceError("list_decks", "failed to list decks", err)
	}
	return decks, nil
}

func (s *deckServiceImpl) RenameDeck(ctx context.Context, deckID uuid.UUID, title string) (*domain.Deck, error) {
	unlock := s.locks.lock(deckID)
	defer unlock()

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, newServiceError("rename_deck", "failed to load deck", err)
	}

	if err := deck.Rename(title); err != nil {
		return nil, newServiceError("rename_deck", "invalid title", err)
	}

	if err := s.deckStore.Update(ctx, deck); err != nil {
		return nil, newServiceError("rename_deck", "failed to persist deck", err)
	}
	return deck, nil
}

func (s *deckServiceImpl) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.lock(deckID)
	defer unlock()

	if err := s.deckStore.Delete(ctx, deckID); err != nil {
		return newServiceError("delete_deck", "failed to delete deck", err)
	}

	log.Info("deck deleted", slog.String("deck_id", deckID.String()))
	return nil
}

func (s *deckServiceImpl) ToggleFavorite(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.lock(deckID)
	defer unlock()

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, newServiceError("toggle_favorite", "failed to load deck", err)
	}

	deck.ToggleFavorite()

	if err := s.deckStore.Update(ctx, deck); err != nil {
		return nil, newServiceError("toggle_favorite", "failed to persist deck", err)
	}

	log.Debug("favorite toggled",
		slog.String("deck_id", deckID.String()),
		slog.Bool("is_favorite", deck.IsFavorite))
	return deck, nil
}

func (s *deckServiceImpl) ShareDeck(ctx context.Context, deckID uuid.UUID, recipient string) (*domain.Deck, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	recipient = strings.TrimSpace(recipient)

	unlock := s.locks.lock(deckID)
	defer unlock()

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, "", newServiceError("share_deck", "failed to load deck", err)
	}

	added, err := deck.ShareWith(recipient)
	if err != nil {
		return nil, "", newServiceError("share_deck", "invalid recipient", err)
	}

	if added {
		if err := s.deckStore.Update(ctx, deck); err != nil {
			return nil, "", newServiceError("share_deck", "failed to persist deck", err)
		}
	}

	// A fresh token is issued even for an already-shared recipient so a
	// lost invite email can be re-sent.
	token, err := s.tokens.Issue(deck.ID, recipient)
	if err != nil {
		return nil, "", newServiceError("share_deck", "failed to issue share token", err)
	}

	log.Info("deck shared",
		slog.String("deck_id", deckID.String()),
		slog.Bool("newly_added", added),
		slog.Int("shared_with_count", len(deck.SharedWith)))
	return deck, token, nil
}
