// Package memory provides in-memory implementations of the store
// interfaces, built on the generic itemstore primitive. They carry the
// same semantics as the Postgres implementations (insertion order, stable
// positions, cascade on deck delete) and back the service unit tests.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/itemstore"
	"github.com/GarethNobleLFG/brainflip/internal/store"
	"github.com/google/uuid"
)

// deckRecord adapts domain.Deck to the itemstore Item constraint.
type deckRecord struct {
	deck domain.Deck
}

func (r deckRecord) ItemID() uuid.UUID { return r.deck.ID }

func (r deckRecord) WithID(id uuid.UUID) deckRecord {
	r.deck.ID = id
	return r
}

func (r deckRecord) Merge(partial deckRecord) deckRecord {
	// Deck updates arrive as full snapshots from the service layer.
	partial.deck.ID = r.deck.ID
	partial.deck.CreatedAt = r.deck.CreatedAt
	return partial
}

// cardRecord adapts domain.Card to the itemstore Item constraint.
type cardRecord struct {
	card domain.Card
}

func (r cardRecord) ItemID() uuid.UUID { return r.card.ID }

func (r cardRecord) WithID(id uuid.UUID) cardRecord {
	r.card.ID = id
	return r
}

func (r cardRecord) Merge(partial cardRecord) cardRecord {
	// Card updates replace front/back wholesale; identity, deck
	// membership, and position are immutable.
	partial.card.ID = r.card.ID
	partial.card.DeckID = r.card.DeckID
	partial.card.Position = r.card.Position
	partial.card.CreatedAt = r.card.CreatedAt
	return partial
}

// Store holds decks and their cards in memory. It implements both
// store.DeckStore and store.CardStore; use DeckStore() and CardStore()
// for interface-typed views.
type Store struct {
	mu        sync.Mutex
	decks     *itemstore.Store[deckRecord]
	cards     map[uuid.UUID]*itemstore.Store[cardRecord] // keyed by deck ID
	cardIndex map[uuid.UUID]uuid.UUID                    // card ID -> deck ID
	nextPos   map[uuid.UUID]int                          // deck ID -> next card position
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		decks:     itemstore.New[deckRecord](),
		cards:     make(map[uuid.UUID]*itemstore.Store[cardRecord]),
		cardIndex: make(map[uuid.UUID]uuid.UUID),
		nextPos:   make(map[uuid.UUID]int),
	}
}

// DeckStore returns a store.DeckStore view of the store.
func (s *Store) DeckStore() store.DeckStore { return (*deckStoreView)(s) }

// CardStore returns a store.CardStore view of the store.
func (s *Store) CardStore() store.CardStore { return (*cardStoreView)(s) }

type deckStoreView Store

var _ store.DeckStore = (*deckStoreView)(nil)

func (v *deckStoreView) Create(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.decks.Add(deckRecord{deck: *deck}); err != nil {
		return store.NewStoreError("deck", "create", "duplicate deck ID", err)
	}
	s.cards[deck.ID] = itemstore.New[cardRecord]()
	return nil
}

func (v *deckStoreView) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	s := (*Store)(v)
	rec, err := s.decks.Get(id)
	if err != nil {
		return nil, store.ErrDeckNotFound
	}
	deck := rec.deck
	return &deck, nil
}

func (v *deckStoreView) List(ctx context.Context) ([]*domain.Deck, error) {
	s := (*Store)(v)
	recs := s.decks.List()
	decks := make([]*domain.Deck, 0, len(recs))
	for _, rec := range recs {
		deck := rec.deck
		decks = append(decks, &deck)
	}
	return decks, nil
}

func (v *deckStoreView) Update(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return err
	}

	s := (*Store)(v)
	if _, err := s.decks.Update(deck.ID, deckRecord{deck: *deck}); err != nil {
		return store.ErrDeckNotFound
	}
	return nil
}

func (v *deckStoreView) Delete(ctx context.Context, id uuid.UUID) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.decks.Remove(id); err != nil {
		return store.ErrDeckNotFound
	}

	// Cascade: a deck owns its cards.
	if deckCards, ok := s.cards[id]; ok {
		for _, rec := range deckCards.List() {
			delete(s.cardIndex, rec.card.ID)
		}
		delete(s.cards, id)
	}
	delete(s.nextPos, id)
	return nil
}

func (v *deckStoreView) WithTx(tx *sql.Tx) store.DeckStore { return v }

type cardStoreView Store

var _ store.CardStore = (*cardStoreView)(nil)

func (v *cardStoreView) Create(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	deckCards, ok := s.cards[card.DeckID]
	if !ok {
		return store.ErrDeckNotFound
	}

	card.Position = s.nextPos[card.DeckID]
	s.nextPos[card.DeckID]++

	if _, err := deckCards.Add(cardRecord{card: *card}); err != nil {
		return store.NewStoreError("card", "create", "duplicate card ID", err)
	}
	s.cardIndex[card.ID] = card.DeckID
	return nil
}

func (v *cardStoreView) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	s := (*Store)(v)
	s.mu.Lock()
	deckID, ok := s.cardIndex[id]
	deckCards := s.cards[deckID]
	s.mu.Unlock()

	if !ok || deckCards == nil {
		return nil, store.ErrCardNotFound
	}

	rec, err := deckCards.Get(id)
	if err != nil {
		return nil, store.ErrCardNotFound
	}
	card := rec.card
	return &card, nil
}

func (v *cardStoreView) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	s := (*Store)(v)
	s.mu.Lock()
	deckCards, ok := s.cards[deckID]
	s.mu.Unlock()

	if !ok {
		return nil, store.ErrDeckNotFound
	}

	recs := deckCards.List()
	cards := make([]*domain.Card, 0, len(recs))
	for _, rec := range recs {
		card := rec.card
		cards = append(cards, &card)
	}
	return cards, nil
}

func (v *cardStoreView) Update(ctx context.Context, card *domain.Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	s := (*Store)(v)
	s.mu.Lock()
	deckID, ok := s.cardIndex[card.ID]
	deckCards := s.cards[deckID]
	s.mu.Unlock()

	if !ok || deckCards == nil {
		return store.ErrCardNotFound
	}

	if _, err := deckCards.Update(card.ID, cardRecord{card: *card}); err != nil {
		return store.ErrCardNotFound
	}
	return nil
}

func (v *cardStoreView) Delete(ctx context.Context, id uuid.UUID) error {
	s := (*Store)(v)
	s.mu.Lock()
	defer s.mu.Unlock()

	deckID, ok := s.cardIndex[id]
	deckCards := s.cards[deckID]
	if !ok || deckCards == nil {
		return store.ErrCardNotFound
	}

	if err := deckCards.Remove(id); err != nil {
		return store.ErrCardNotFound
	}
	delete(s.cardIndex, id)
	return nil
}

func (v *cardStoreView) WithTx(tx *sql.Tx) store.CardStore { return v }
