package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// FlashcardService manages sets and their cards for their owner.
type FlashcardService interface {
	CreateSet(ctx context.Context, userID uuid.UUID, title, description string) (*domain.FlashcardSet, error)
	ListSets(ctx context.Context, userID uuid.UUID) ([]domain.FlashcardSet, error)

	// GetSetDetails returns the set, all of its cards and the derived counters.
	GetSetDetails(ctx context.Context, userID, setID uuid.UUID) (*domain.SetDetails, error)

	// GetDueCards returns the cards of a set that are due now.
	GetDueCards(ctx context.Context, userID, setID uuid.UUID) ([]domain.Flashcard, error)

	AddCard(ctx context.Context, userID, setID uuid.UUID, question, answer string) (*domain.Flashcard, error)
	EditCard(ctx context.Context, userID, cardID uuid.UUID, question, answer string) (*domain.Flashcard, error)
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error
}

type flashcardService struct {
	sets   store.FlashcardSetStore
	cards  store.FlashcardStore
	tx     Transactor
	now    func() time.Time
	logger *slog.Logger
}

var _ FlashcardService = (*flashcardService)(nil)

// NewFlashcardService validates its dependencies and returns the service.
func NewFlashcardService(
	sets store.FlashcardSetStore,
	cards store.FlashcardStore,
	tx Transactor,
	l *slog.Logger,
) (FlashcardService, error) {
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if cards == nil {
		return nil, domain.NewValidationError("cards", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}
	return &flashcardService{
		sets:   sets,
		cards:  cards,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l.With(slog.String("component", "flashcard_service")),
	}, nil
}

// ownedSet loads a set and checks that userID owns it.
func ownedSet(ctx context.Context, sets store.FlashcardSetStore, userID, setID uuid.UUID) (*domain.FlashcardSet, error) {
	set, err := sets.GetByID(ctx, setID)
	if err != nil {
		return nil, err
	}
	if set.UserID != userID {
		return nil, ErrNotOwned
	}
	return set, nil
}

// ownedCard loads a card and checks that userID owns its set.
func ownedCard(
	ctx context.Context,
	sets store.FlashcardSetStore,
	cards store.FlashcardStore,
	userID, cardID uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedSet(ctx, sets, userID, card.SetID); err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			return nil, store.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *flashcardService) CreateSet(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
) (*domain.FlashcardSet, error) {
	set, err := domain.NewFlashcardSet(userID, title, description)
	if err != nil {
		return nil, err
	}
	if err := s.sets.Create(ctx, set); err != nil {
		return nil, NewServiceError("flashcard", "create_set", "failed to save set", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("flashcard set created",
		slog.String("set_id", set.ID.String()),
		slog.String("user_id", userID.String()))
	return set, nil
}

func (s *flashcardService) ListSets(ctx context.Context, userID uuid.UUID) ([]domain.FlashcardSet, error) {
	sets, err := s.sets.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("flashcard", "list_sets", "failed to list sets", err)
	}
	return sets, nil
}

func (s *flashcardService) GetSetDetails(ctx context.Context, userID, setID uuid.UUID) (*domain.SetDetails, error) {
	set, err := ownedSet(ctx, s.sets, userID, setID)
	if err != nil {
		return nil, err
	}
	cards, err := s.cards.ListBySet(ctx, setID)
	if err != nil {
		return nil, NewServiceError("flashcard", "get_set_details", "failed to list cards", err)
	}
	return domain.NewSetDetails(*set, cards, s.now()), nil
}

func (s *flashcardService) GetDueCards(ctx context.Context, userID, setID uuid.UUID) ([]domain.Flashcard, error) {
	if _, err := ownedSet(ctx, s.sets, userID, setID); err != nil {
		return nil, err
	}
	cards, err := s.cards.ListBySet(ctx, setID)
	if err != nil {
		return nil, NewServiceError("flashcard", "get_due_cards", "failed to list cards", err)
	}

	now := s.now()
	due := make([]domain.Flashcard, 0, len(cards))
	for _, c := range cards {
		if c.IsDue(now) {
			due = append(due, c)
		}
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("due cards selected",
		slog.String("set_id", setID.String()),
		slog.Int("total", len(cards)),
		slog.Int("due", len(due)))
	return due, nil
}

func (s *flashcardService) AddCard(
	ctx context.Context,
	userID, setID uuid.UUID,
	question, answer string,
) (*domain.Flashcard, error) {
	card, err := domain.NewFlashcard(setID, question, answer)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		sets := s.sets.WithTx(tx)
		if _, err := ownedSet(ctx, sets, userID, setID); err != nil {
			return err
		}
		if err := s.cards.WithTx(tx).Create(ctx, card); err != nil {
			return err
		}
		return sets.Touch(ctx, setID)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *flashcardService) EditCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	question, answer string,
) (*domain.Flashcard, error) {
	var updated *domain.Flashcard
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		sets := s.sets.WithTx(tx)
		cards := s.cards.WithTx(tx)

		card, err := ownedCard(ctx, sets, cards, userID, cardID)
		if err != nil {
			return err
		}
		card.Question = strings.TrimSpace(question)
		card.Answer = strings.TrimSpace(answer)
		card.UpdatedAt = s.now()
		if err := card.Validate(); err != nil {
			return err
		}
		if err := cards.UpdateContent(ctx, card); err != nil {
			return err
		}
		updated = card
		return sets.Touch(ctx, card.SetID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *flashcardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, tx store.DBTX) error {
		sets := s.sets.WithTx(tx)
		cards := s.cards.WithTx(tx)

		card, err := ownedCard(ctx, sets, cards, userID, cardID)
		if err != nil {
			return err
		}
		if err := cards.Delete(ctx, cardID); err != nil {
			return err
		}
		return sets.Touch(ctx, card.SetID)
	})
}
