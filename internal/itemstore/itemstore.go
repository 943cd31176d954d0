// Package itemstore provides a generic ordered-collection CRUD primitive
// for lists of user-editable records. It backs the in-memory deck and card
// stores and defines the ordering semantics the persistent stores mirror:
// items keep insertion order, updates happen in place, and removal never
// reorders the survivors.
package itemstore

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Errors returned by Store operations.
var (
	// ErrNotFound is returned when the requested item ID is absent.
	ErrNotFound = errors.New("item not found")

	// ErrDuplicate is returned when adding an item whose preassigned ID
	// collides with a live item.
	ErrDuplicate = errors.New("item ID already present")
)

// Item is the constraint for records managed by a Store. Implementations
// expose their identifier, accept an assigned identifier, and accept
// merge-style updates from a partial value of the same type.
type Item[T any] interface {
	// ItemID returns the item's unique identifier, or uuid.Nil when the
	// store should assign one.
	ItemID() uuid.UUID

	// WithID returns a copy of the item carrying the given identifier.
	WithID(id uuid.UUID) T

	// Merge folds the supplied partial value into the receiver and returns
	// the result. Which fields count as "set" is the item type's business.
	Merge(partial T) T
}

// Store is an ordered collection of items with CRUD semantics.
// All operations are serialized by an internal mutex so the
// append/remove-without-reorder invariant holds under concurrent callers.
type Store[T Item[T]] struct {
	mu    sync.Mutex
	items []T
	index map[uuid.UUID]int
}

// New creates an empty Store.
func New[T Item[T]]() *Store[T] {
	return &Store[T]{
		index: make(map[uuid.UUID]int),
	}
}

// List returns the current items in insertion order.
// The returned slice is a copy; mutating it does not affect the store.
func (s *Store[T]) List() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the store.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Add appends the item to the end of the collection and returns the stored
// item. An item arriving without an ID is assigned a fresh UUID that cannot
// collide with a live item; an item arriving with a preassigned ID keeps it
// but Add returns ErrDuplicate when that ID is already live.
func (s *Store[T]) Add(item T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	id := item.ItemID()
	if id == uuid.Nil {
		for {
			id = uuid.New()
			if _, exists := s.index[id]; !exists {
				break
			}
		}
		item = item.WithID(id)
	} else if _, exists := s.index[id]; exists {
		return zero, ErrDuplicate
	}

	s.index[id] = len(s.items)
	s.items = append(s.items, item)
	return item, nil
}

// Get returns the item with the given ID.
// Returns ErrNotFound if the ID is absent.
func (s *Store[T]) Get(id uuid.UUID) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	pos, ok := s.index[id]
	if !ok {
		return zero, ErrNotFound
	}
	return s.items[pos], nil
}

// Update merges the partial value into the stored item, preserving its
// position, and returns the updated item.
// Returns ErrNotFound if the ID is absent; it never creates.
func (s *Store[T]) Update(id uuid.UUID, partial T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	pos, ok := s.index[id]
	if !ok {
		return zero, ErrNotFound
	}

	s.items[pos] = s.items[pos].Merge(partial)
	return s.items[pos], nil
}

// Remove deletes the item with the given ID. Remaining items keep their
// relative order. Returns ErrNotFound if the ID is absent.
func (s *Store[T]) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)

	// Positions after the removed slot shift down by one.
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ItemID()] = i
	}
	return nil
}
