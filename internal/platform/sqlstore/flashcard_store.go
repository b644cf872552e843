package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

const flashcardColumns = `id, set_id, question, answer, due_date, interval_days, ease_factor,
	repetitions, last_reviewed_at, created_at, updated_at`

// FlashcardStore implements store.FlashcardStore.
type FlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.FlashcardStore = (*FlashcardStore)(nil)

// NewFlashcardStore panics on a nil db; a nil logger falls back to slog.Default.
func NewFlashcardStore(db store.DBTX, l *slog.Logger) *FlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if l == nil {
		l = slog.Default()
	}
	return &FlashcardStore{db: db, logger: l.With(slog.String("component", "flashcard_store"))}
}

func (s *FlashcardStore) WithTx(tx store.DBTX) store.FlashcardStore {
	return &FlashcardStore{db: tx, logger: s.logger}
}

func (s *FlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("invalid flashcard", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.db.Rebind(`INSERT INTO flashcards (` + flashcardColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query,
		card.ID, card.SetID, card.Question, card.Answer,
		card.DueDate, card.Interval, card.EaseFactor, card.Repetitions, card.LastReviewedAt,
		card.CreatedAt.UTC(), card.UpdatedAt.UTC())
	if err != nil {
		log.Error("failed to insert flashcard",
			slog.String("card_id", card.ID.String()),
			slog.String("set_id", card.SetID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("flashcard", "create", "insert failed", MapError(err))
	}

	log.Debug("flashcard created", slog.String("card_id", card.ID.String()))
	return nil
}

func (s *FlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	var row flashcardRow
	query := s.db.Rebind(`SELECT ` + flashcardColumns + ` FROM flashcards WHERE id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &row, query, id); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrCardNotFound
		}
		return nil, store.NewStoreError("flashcard", "get", "query failed", mapped)
	}
	card := row.toDomain()
	return &card, nil
}

func (s *FlashcardStore) ListBySet(ctx context.Context, setID uuid.UUID) ([]domain.Flashcard, error) {
	var rows []flashcardRow
	query := s.db.Rebind(`SELECT ` + flashcardColumns + ` FROM flashcards
		WHERE set_id = ? ORDER BY created_at, id`)
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, setID); err != nil {
		return nil, store.NewStoreError("flashcard", "list", "query failed", MapError(err))
	}

	cards := make([]domain.Flashcard, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, r.toDomain())
	}
	return cards, nil
}

func (s *FlashcardStore) UpdateContent(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.db.Rebind(`UPDATE flashcards SET question = ?, answer = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, card.Question, card.Answer, card.UpdatedAt.UTC(), card.ID)
	if err != nil {
		return store.NewStoreError("flashcard", "update", "update failed", updateFailed(err))
	}
	return CheckRowsAffected(res, store.ErrCardNotFound)
}

func (s *FlashcardStore) UpdateSRS(ctx context.Context, card *domain.Flashcard) error {
	if err := card.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := s.db.Rebind(`UPDATE flashcards SET due_date = ?, interval_days = ?, ease_factor = ?,
		repetitions = ?, last_reviewed_at = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query,
		card.DueDate, card.Interval, card.EaseFactor, card.Repetitions, card.LastReviewedAt,
		card.UpdatedAt.UTC(), card.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update flashcard SRS state",
			slog.String("card_id", card.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("flashcard", "update_srs", "update failed", updateFailed(err))
	}
	return CheckRowsAffected(res, store.ErrCardNotFound)
}

func (s *FlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	query := s.db.Rebind(`DELETE FROM flashcards WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return store.NewStoreError("flashcard", "delete", "delete failed", deleteFailed(err))
	}
	return CheckRowsAffected(res, store.ErrCardNotFound)
}
