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
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// Create implements store.CardStore.Create
// The card receives the next free position in its deck; positions are
// monotonic per deck and never reused, so insertion order survives deletes.
// Returns store.ErrDeckNotFound if the owning deck is absent.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, deck_id, front, back, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM cards WHERE deck_id = $2),
			$5, $6)
		RETURNING position
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		card.ID,
		card.DeckID,
		card.Front,
		card.Back,
		card.CreatedAt,
		card.UpdatedAt,
	).Scan(&card.Position)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during card creation",
				slog.String("card_id", card.ID.String()),
				slog.String("deck_id", card.DeckID.String()))
			return fmt.Errorf("%w: owning deck %s", store.ErrDeckNotFound, card.DeckID)
		}
		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("deck_id", card.DeckID.String()))
		return mapConnectivityError(err)
	}

	log.Info("card created successfully",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", card.DeckID.String()),
		slog.Int("position", card.Position))
	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, position, created_at, updated_at
		FROM cards
		WHERE id = $1
	`
	var card domain.Card
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.DeckID,
		&card.Front,
		&card.Back,
		&card.Position,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, mapConnectivityError(err)
	}

	return &card, nil
}

// ListByDeck implements store.CardStore.ListByDeck
// Cards come back in insertion order (ascending position).
func (s *PostgresCardStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, position, created_at, updated_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY position ASC
	`
	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to list cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, mapConnectivityError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var cards []*domain.Card
	for rows.Next() {
		var card domain.Card
		if err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.Front,
			&card.Back,
			&card.Position,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			log.Error("failed to scan card row", slog.String("error", err.Error()))
			return nil, mapConnectivityError(err)
		}
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		log.Error("card row iteration failed", slog.String("error", err.Error()))
		return nil, mapConnectivityError(err)
	}

	return cards, nil
}

// Update implements store.CardStore.Update
// Only front and back change; position and deck membership are immutable.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE cards
		SET front = $1, back = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := s.db.ExecContext(ctx, query, card.Front, card.Back, card.UpdatedAt, card.ID)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return mapConnectivityError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// Delete implements store.CardStore.Delete
// Surviving cards are never renumbered.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return mapConnectivityError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrCardNotFound
	}

	log.Info("card deleted", slog.String("card_id", id.String()))
	return nil
}

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}
