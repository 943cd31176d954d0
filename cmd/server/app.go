package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/GarethNobleLFG/brainflip/internal/config"
	"github.com/GarethNobleLFG/brainflip/internal/generation"
	"github.com/GarethNobleLFG/brainflip/internal/ingestion"
	"github.com/GarethNobleLFG/brainflip/internal/platform/gemini"
	"github.com/GarethNobleLFG/brainflip/internal/platform/pdf"
	"github.com/GarethNobleLFG/brainflip/internal/platform/postgres"
	"github.com/GarethNobleLFG/brainflip/internal/service"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckService service.DeckService
	cardService service.CardService
	pipeline    *ingestion.Pipeline
}

// newApplication connects to the database and wires stores, services, and
// the ingestion pipeline.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := setupDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	deckStore := postgres.NewPostgresDeckStore(db, log)
	cardStore := postgres.NewPostgresCardStore(db, log)

	tokens, err := service.NewShareTokenIssuer(
		cfg.Share.TokenSecret,
		time.Duration(cfg.Share.TokenTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create share token issuer: %w", err)
	}

	// One lock set across both services keeps card and deck mutations of
	// the same deck serialized.
	locks := service.SharedLocks()
	deckService := service.NewDeckService(deckStore, tokens, locks, log)
	cardService := service.NewCardService(cardStore, deckStore, locks, log)

	generator, err := setupGenerator(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	pipeline, err := ingestion.NewPipeline(
		pdf.NewExtractor(log),
		generator,
		time.Duration(cfg.Ingestion.TimeoutSeconds)*time.Second,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		deckService: deckService,
		cardService: cardService,
		pipeline:    pipeline,
	}, nil
}

// setupDatabase opens the connection pool and verifies connectivity.
func setupDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// setupGenerator selects the Gemini generator when an API key is
// configured and the heuristic generator otherwise.
func setupGenerator(ctx context.Context, cfg *config.Config, log *slog.Logger) (generation.Generator, error) {
	if cfg.LLM.GeminiAPIKey == "" {
		log.Warn("no Gemini API key configured, using heuristic flashcard generator")
		return generation.NewHeuristicGenerator(), nil
	}

	generator, err := gemini.NewGenerator(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini generator: %w", err)
	}
	log.Info("Gemini generator initialized", "model", cfg.LLM.ModelName)
	return generator, nil
}

// cleanup releases application resources after the server stops.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
