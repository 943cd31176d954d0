package service

import (
	"sync"

	"github.com/google/uuid"
)

// deckLocks serializes mutations per deck. Each deck/card mutation is a
// short read-modify-write; holding one lock per deck keeps concurrent
// callers from interleaving those and violating the card ordering
// invariant, without serializing traffic across decks.
type deckLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newDeckLocks() *deckLocks {
	return &deckLocks{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// lock acquires the mutex for the given deck, creating it on first use,
// and returns the matching unlock function.
//
// Locks are never reclaimed; one mutex per live deck is cheap and delete
// traffic is rare.
func (d *deckLocks) lock(deckID uuid.UUID) func() {
	d.mu.Lock()
	m, ok := d.locks[deckID]
	if !ok {
		m = &sync.Mutex{}
		d.locks[deckID] = m
	}
	d.mu.Unlock()

	m.Lock()
	return m.Unlock
}
