package sqlstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// SessionLogStore implements store.SessionLogStore.
type SessionLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.SessionLogStore = (*SessionLogStore)(nil)

func NewSessionLogStore(db store.DBTX, l *slog.Logger) *SessionLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &SessionLogStore{db: db, logger: l.With(slog.String("component", "session_log_store"))}
}

func (s *SessionLogStore) Create(ctx context.Context, l *domain.SessionLog) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.db.Rebind(`INSERT INTO study_sessions
		(id, set_id, user_id, cards_reviewed, again_count, hard_count, good_count, easy_count, mastery_at_end, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	p := l.Performance
	_, err := s.db.ExecContext(ctx, query,
		l.ID, l.SetID, l.UserID, l.CardsReviewed, p.Again, p.Hard, p.Good, p.Easy, l.MasteryAtEnd, l.CompletedAt.UTC())
	if err != nil {
		s.logger.Error("failed to insert study session",
			slog.String("set_id", l.SetID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("study session", "create", "insert failed", MapError(err))
	}
	return nil
}

func (s *SessionLogStore) ListBySet(ctx context.Context, userID, setID uuid.UUID) ([]domain.SessionLog, error) {
	var rows []sessionRow
	query := s.db.Rebind(`SELECT id, set_id, user_id, cards_reviewed, again_count, hard_count, good_count,
		easy_count, mastery_at_end, completed_at
		FROM study_sessions WHERE user_id = ? AND set_id = ? ORDER BY completed_at, id`)
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, userID, setID); err != nil {
		return nil, store.NewStoreError("study session", "list", "query failed", MapError(err))
	}

	logs := make([]domain.SessionLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, r.toDomain())
	}
	return logs, nil
}
