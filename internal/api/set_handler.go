package api

import (
	"log/slog"
	"net/http"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/api/shared"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/service"
)

// SetHandler serves flashcard sets, their details and due cards.
type SetHandler struct {
	flashcards service.FlashcardService
	logger     *slog.Logger
}

func NewSetHandler(flashcards service.FlashcardService, l *slog.Logger) *SetHandler {
	if flashcards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("flashcards cannot be nil for SetHandler")
	}
	if l == nil {
		l = slog.Default()
	}
	return &SetHandler{flashcards: flashcards, logger: l.With(slog.String("component", "set_handler"))}
}

// ListSets handles GET /api/sets.
func (h *SetHandler) ListSets(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	sets, err := h.flashcards.ListSets(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list flashcard sets")
		return
	}
	if sets == nil {
		sets = []domain.FlashcardSet{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, sets)
}

// CreateSet handles POST /api/sets.
func (h *SetHandler) CreateSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUser(w, r, log)
	if !ok {
		return
	}

	var req CreateSetRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	set, err := h.flashcards.CreateSet(r.Context(), userID, req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create flashcard set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, set)
}

// GetSet handles GET /api/sets/{id}.
func (h *SetHandler) GetSet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	details, err := h.flashcards.GetSetDetails(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load flashcard set")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, details)
}

// GetDueCards handles GET /api/sets/{id}/due. An empty list is a 200.
func (h *SetHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	cards, err := h.flashcards.GetDueCards(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load due cards")
		return
	}
	log.Debug("due cards served", slog.String("set_id", setID.String()), slog.Int("count", len(cards)))
	if cards == nil {
		cards = []domain.Flashcard{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}
