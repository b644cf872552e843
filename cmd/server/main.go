// Package main runs the study API: flashcard sets, SRS reviews, session logs
// and narrative reports over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/gemini"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/sqlstore"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	migrateCmd := flags.String("migrate", "", "run a migration command (up, down, status) and exit")
	_ = flags.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	db, err := sqlstore.Open(ctx, cfg.Database, l)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			l.Error("error closing database connection", slog.String("error", cerr.Error()))
		}
	}()

	if migrateCmd != "" {
		return handleMigrations(ctx, db, cfg.Database.Driver, migrateCmd, l)
	}
	if cfg.Database.AutoMigrate {
		if err := sqlstore.Migrate(ctx, db, cfg.Database.Driver, l); err != nil {
			return err
		}
	}

	generator, err := gemini.NewReportGenerator(ctx, l.With(slog.String("component", "llm_generator")), cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}

	app, err := newApplication(cfg, l, db, generator)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
