package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain/srs"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// ReviewService applies a quality rating to a card's SRS state.
type ReviewService interface {
	// SubmitReview schedules the card from quality and returns it with its new
	// SRS fields.
	SubmitReview(ctx context.Context, userID, cardID uuid.UUID, quality domain.Quality) (*domain.Flashcard, error)
}

type reviewService struct {
	sets      store.FlashcardSetStore
	cards     store.FlashcardStore
	scheduler srs.Service
	tx        Transactor
	now       func() time.Time
	logger    *slog.Logger
}

var _ ReviewService = (*reviewService)(nil)

func NewReviewService(
	sets store.FlashcardSetStore,
	cards store.FlashcardStore,
	scheduler srs.Service,
	tx Transactor,
	l *slog.Logger,
) (ReviewService, error) {
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if scheduler == nil {
		return nil, domain.NewValidationError("scheduler", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}
	return &reviewService{
		sets:      sets,
		cards:     cards,
		scheduler: scheduler,
		tx:        tx,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l.With(slog.String("component", "review_service")),
	}, nil
}

func (s *reviewService) SubmitReview(
	ctx context.Context,
	userID, cardID uuid.UUID,
	quality domain.Quality,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("card_id", cardID.String()),
		slog.String("quality", quality.String()))

	if !quality.Valid() {
		return nil, domain.ErrInvalidQuality
	}

	var reviewed *domain.Flashcard
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		sets := s.sets.WithTx(tx)
		cards := s.cards.WithTx(tx)

		card, err := ownedCard(ctx, sets, cards, userID, cardID)
		if err != nil {
			return err
		}

		now := s.now()
		next, err := s.scheduler.Schedule(card, quality, now)
		if err != nil {
			return NewServiceError("review", "submit", "failed to schedule card", err)
		}
		card.ApplyReview(next, now)

		if err := cards.UpdateSRS(ctx, card); err != nil {
			return err
		}
		reviewed = card
		return sets.Touch(ctx, card.SetID)
	})
	if err != nil {
		log.Warn("review not applied", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("review applied",
		slog.Int("interval", reviewed.Interval.Int),
		slog.Int("repetitions", reviewed.Repetitions.Int))
	return reviewed, nil
}
