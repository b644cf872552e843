package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// SessionService records finished study sessions and serves their history.
type SessionService interface {
	LogSession(
		ctx context.Context,
		userID, setID uuid.UUID,
		cardsReviewed int,
		performance domain.PerformanceCounts,
		masteryAtEnd int,
	) (*domain.SessionLog, error)

	// History returns the user's past sessions for a set, oldest first.
	History(ctx context.Context, userID, setID uuid.UUID) ([]domain.SessionLog, error)
}

type sessionService struct {
	sets     store.FlashcardSetStore
	sessions store.SessionLogStore
	logger   *slog.Logger
}

var _ SessionService = (*sessionService)(nil)

func NewSessionService(
	sets store.FlashcardSetStore,
	sessions store.SessionLogStore,
	l *slog.Logger,
) (SessionService, error) {
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}
	return &sessionService{
		sets:     sets,
		sessions: sessions,
		logger:   l.With(slog.String("component", "session_service")),
	}, nil
}

func (s *sessionService) LogSession(
	ctx context.Context,
	userID, setID uuid.UUID,
	cardsReviewed int,
	performance domain.PerformanceCounts,
	masteryAtEnd int,
) (*domain.SessionLog, error) {
	if _, err := ownedSet(ctx, s.sets, userID, setID); err != nil {
		return nil, err
	}

	entry, err := domain.NewSessionLog(userID, setID, cardsReviewed, performance, masteryAtEnd)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, entry); err != nil {
		return nil, NewServiceError("session", "log", "failed to save session", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("study session logged",
		slog.String("set_id", setID.String()),
		slog.Int("cards_reviewed", cardsReviewed),
		slog.Int("mastery_at_end", masteryAtEnd))
	return entry, nil
}

func (s *sessionService) History(ctx context.Context, userID, setID uuid.UUID) ([]domain.SessionLog, error) {
	if _, err := ownedSet(ctx, s.sets, userID, setID); err != nil {
		return nil, err
	}
	logs, err := s.sessions.ListBySet(ctx, userID, setID)
	if err != nil {
		return nil, NewServiceError("session", "history", "failed to list sessions", err)
	}
	return logs, nil
}
