package api

import (
	"log/slog"
	"net/http"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/api/shared"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/service"
)

// CardHandler serves card editing and reviews.
type CardHandler struct {
	flashcards service.FlashcardService
	reviews    service.ReviewService
	logger     *slog.Logger
}

func NewCardHandler(flashcards service.FlashcardService, reviews service.ReviewService, l *slog.Logger) *CardHandler {
	if flashcards == nil || reviews == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("services cannot be nil for CardHandler")
	}
	if l == nil {
		l = slog.Default()
	}
	return &CardHandler{
		flashcards: flashcards,
		reviews:    reviews,
		logger:     l.With(slog.String("component", "card_handler")),
	}
}

// AddCard handles POST /api/sets/{id}/cards.
func (h *CardHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	card, err := h.flashcards.AddCard(r.Context(), userID, setID, req.Question, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to add flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// EditCard handles PUT /api/cards/{id}.
func (h *CardHandler) EditCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req CardRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	card, err := h.flashcards.EditCard(r.Context(), userID, cardID, req.Question, req.Answer)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update flashcard")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /api/cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.flashcards.DeleteCard(r.Context(), userID, cardID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete flashcard")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubmitReview handles POST /api/cards/{id}/review and returns the card with
// its new SRS fields.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ReviewRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	card, err := h.reviews.SubmitReview(r.Context(), userID, cardID, *req.Quality)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, card)
}
