package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/sqlstore"
)

// handleMigrations runs one migration command against db.
func handleMigrations(ctx context.Context, db *sqlx.DB, driver, command string, l *slog.Logger) error {
	provider, err := sqlstore.NewMigrationProvider(db, driver)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		return sqlstore.Migrate(ctx, db, driver, l)

	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		if result != nil {
			l.Info("rolled back migration",
				slog.Int64("version", result.Source.Version),
				slog.Duration("duration", result.Duration))
		}
		return nil

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		for _, s := range statuses {
			l.Info("migration status",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)))
		}
		return nil
	}
	return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
}
