package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain/srs"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/sqlstore"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/service"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/service/auth"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	setStore     store.FlashcardSetStore
	cardStore    store.FlashcardStore
	sessionStore store.SessionLogStore

	jwtService       auth.JWTService
	scheduler        srs.Service
	flashcardService service.FlashcardService
	reviewService    service.ReviewService
	sessionService   service.SessionService
	reportService    service.ReportService
}

// newApplication wires stores and services over an open database. The report
// generator is built by the caller so tests can substitute it.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	generator generation.ReportGenerator,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.setStore = sqlstore.NewSetStore(db, logger)
	app.cardStore = sqlstore.NewFlashcardStore(db, logger)
	app.sessionStore = sqlstore.NewSessionLogStore(db, logger)
	tx := service.NewTransactor(db)

	app.scheduler = srs.NewServiceWithParams(srs.NewParams(cfg.SRS))

	app.flashcardService, err = service.NewFlashcardService(app.setStore, app.cardStore, tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create flashcard service: %w", err)
	}
	app.reviewService, err = service.NewReviewService(app.setStore, app.cardStore, app.scheduler, tx, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}
	app.sessionService, err = service.NewSessionService(app.setStore, app.sessionStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}
	app.reportService, err = service.NewReportService(app.setStore, generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
