// Package postgres provides PostgreSQL implementations of the store
// interfaces using database/sql with the pgx driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GarethNobleLFG/brainflip/internal/domain"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
	"github.com/GarethNobleLFG/brainflip/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const pgForeignKeyViolationCode = "23503"

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// Create implements store.DeckStore.Create
// It saves a new deck to the database, handling domain validation.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		INSERT INTO decks (id, title, is_favorite, shared_with, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.Title,
		deck.IsFavorite,
		sharedWithValue(deck.SharedWith),
		deck.CreatedAt,
		deck.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return mapConnectivityError(err)
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("title", deck.Title))
	return nil
}

// GetByID implements store.DeckStore.GetByID
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, is_favorite, shared_with, created_at, updated_at
		FROM decks
		WHERE id = $1
	`
	var deck domain.Deck
	var shared sharedWithScanner
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.Title,
		&deck.IsFavorite,
		&shared,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, mapConnectivityError(err)
	}

	deck.SharedWith = shared.recipients
	return &deck, nil
}

// List implements store.DeckStore.List
// Decks are returned oldest first.
func (s *PostgresDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, is_favorite, shared_with, created_at, updated_at
		FROM decks
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, mapConnectivityError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var decks []*domain.Deck
	for rows.Next() {
		var deck domain.Deck
		var shared sharedWithScanner
		if err := rows.Scan(
			&deck.ID,
			&deck.Title,
			&deck.IsFavorite,
			&shared,
			&deck.CreatedAt,
			&deck.UpdatedAt,
		); err != nil {
			log.Error("failed to scan deck row", slog.String("error", err.Error()))
			return nil, mapConnectivityError(err)
		}
		deck.SharedWith = shared.recipients
		decks = append(decks, &deck)
	}

	if err := rows.Err(); err != nil {
		log.Error("deck row iteration failed", slog.String("error", err.Error()))
		return nil, mapConnectivityError(err)
	}

	return decks, nil
}

// Update implements store.DeckStore.Update
// It persists title, favorite flag, and shared recipients.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during update",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		UPDATE decks
		SET title = $1, is_favorite = $2, shared_with = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		deck.Title,
		deck.IsFavorite,
		sharedWithValue(deck.SharedWith),
		deck.UpdatedAt,
		deck.ID,
	)

	if err != nil {
		log.Error("failed to update deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return mapConnectivityError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrDeckNotFound
	}

	return nil
}

// Delete implements store.DeckStore.Delete
// Cards owned by the deck are removed by the cards.deck_id
// ON DELETE CASCADE constraint.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return mapConnectivityError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrDeckNotFound
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key constraint violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode
}
