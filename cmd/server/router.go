package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/api"
	apiMiddleware "github.com/joshuaking1/cognispark-ai-sub000/internal/api/middleware"
)

// setupRouter registers middleware, the health check and every API route.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	setHandler := api.NewSetHandler(app.flashcardService, app.logger)
	cardHandler := api.NewCardHandler(app.flashcardService, app.reviewService, app.logger)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.reportService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/sets", setHandler.ListSets)
		r.Post("/sets", setHandler.CreateSet)
		r.Get("/sets/{id}", setHandler.GetSet)
		r.Get("/sets/{id}/due", setHandler.GetDueCards)
		r.Post("/sets/{id}/cards", cardHandler.AddCard)
		r.Post("/sets/{id}/sessions", sessionHandler.LogSession)
		r.Get("/sets/{id}/sessions", sessionHandler.History)
		r.Post("/sets/{id}/report", sessionHandler.GenerateReport)

		r.Put("/cards/{id}", cardHandler.EditCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)
		r.Post("/cards/{id}/review", cardHandler.SubmitReview)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := app.db.PingContext(r.Context()); err != nil {
			app.logger.Error("health check failed", slog.String("error", err.Error()))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
