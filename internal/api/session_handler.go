package api

import (
	"log/slog"
	"net/http"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/api/shared"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/service"
)

// SessionHandler serves study session logs and narrative reports.
type SessionHandler struct {
	sessions service.SessionService
	reports  service.ReportService
	logger   *slog.Logger
}

func NewSessionHandler(sessions service.SessionService, reports service.ReportService, l *slog.Logger) *SessionHandler {
	if sessions == nil || reports == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("services cannot be nil for SessionHandler")
	}
	if l == nil {
		l = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		reports:  reports,
		logger:   l.With(slog.String("component", "session_handler")),
	}
}

// LogSession handles POST /api/sets/{id}/sessions.
func (h *SessionHandler) LogSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req LogSessionRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	entry, err := h.sessions.LogSession(r.Context(), userID, setID, req.CardsReviewed, req.Performance, req.MasteryAtEnd)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to log study session")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, entry)
}

// History handles GET /api/sets/{id}/sessions.
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	logs, err := h.sessions.History(r.Context(), userID, setID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load study history")
		return
	}
	if logs == nil {
		logs = []domain.SessionLog{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, logs)
}

// GenerateReport handles POST /api/sets/{id}/report.
func (h *SessionHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, setID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	var req ReportRequest
	if !decodeAndValidate(w, r, &req, log) {
		return
	}

	report, err := h.reports.GenerateReport(r.Context(), userID, setID, req.Performance, req.GradeLevel)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate report")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ReportResponse{Report: report})
}
