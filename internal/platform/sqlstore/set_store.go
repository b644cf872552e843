package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

const setColumns = `id, user_id, title, description, created_at, updated_at`

// SetStore implements store.FlashcardSetStore.
type SetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.FlashcardSetStore = (*SetStore)(nil)

// NewSetStore panics on a nil db; a nil logger falls back to slog.Default.
func NewSetStore(db store.DBTX, l *slog.Logger) *SetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &SetStore{db: db, logger: l.With(slog.String("component", "set_store"))}
}

func (s *SetStore) WithTx(tx store.DBTX) store.FlashcardSetStore {
	return &SetStore{db: tx, logger: s.logger}
}

func (s *SetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("invalid flashcard set", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.db.Rebind(`INSERT INTO flashcard_sets (` + setColumns + `) VALUES (?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		set.ID, set.UserID, set.Title, set.Description, set.CreatedAt.UTC(), set.UpdatedAt.UTC())
	if err != nil {
		log.Error("failed to insert flashcard set", slog.String("set_id", set.ID.String()), slog.String("error", err.Error()))
		return store.NewStoreError("flashcard set", "create", "insert failed", MapError(err))
	}
	return nil
}

func (s *SetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	var row setRow
	query := s.db.Rebind(`SELECT ` + setColumns + ` FROM flashcard_sets WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &row, query, id); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrSetNotFound
		}
		return nil, store.NewStoreError("flashcard set", "get", "query failed", mapped)
	}
	set := row.toDomain()
	return &set, nil
}

func (s *SetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FlashcardSet, error) {
	var rows []setRow
	query := s.db.Rebind(`SELECT ` + setColumns + ` FROM flashcard_sets WHERE user_id = ? ORDER BY created_at DESC, id`)
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, userID); err != nil {
		return nil, store.NewStoreError("flashcard set", "list", "query failed", MapError(err))
	}

	sets := make([]domain.FlashcardSet, 0, len(rows))
	for _, r := range rows {
		sets = append(sets, r.toDomain())
	}
	return sets, nil
}

func (s *SetStore) Touch(ctx context.Context, id uuid.UUID) error {
	query := s.db.Rebind(`UPDATE flashcard_sets SET updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return store.NewStoreError("flashcard set", "touch", "update failed", updateFailed(err))
	}
	return CheckRowsAffected(res, store.ErrSetNotFound)
}
