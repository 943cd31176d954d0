// Package main implements the entry point for the brainflip API server,
// which manages flashcard decks and generates flashcards from uploaded
// PDF documents.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/GarethNobleLFG/brainflip/internal/config"
	"github.com/GarethNobleLFG/brainflip/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	migrationsDir := flag.String("migrations-dir", "migrations", "directory holding goose migration files")
	flag.Parse()

	if err := run(*migrateCmd, *migrationsDir); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// run loads configuration, wires the application, and either executes a
// migration command or serves HTTP until shutdown.
func run(migrateCmd, migrationsDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"gemini_key_present", cfg.LLM.GeminiAPIKey != "")

	if migrateCmd != "" {
		return runMigrations(cfg, migrateCmd, migrationsDir)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
