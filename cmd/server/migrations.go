package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/GarethNobleLFG/brainflip/internal/config"
)

// runMigrations executes a goose migration command against the configured
// database and returns once it completes.
func runMigrations(cfg *config.Config, command, dir string) error {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			slog.Error("failed to close database connection", "error", cerr)
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	slog.Info("running migrations", "command", command, "dir", dir)

	switch command {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	slog.Info("migrations finished", "command", command)
	return nil
}
