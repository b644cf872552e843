package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// FlashcardSetStore persists flashcard sets.
type FlashcardSetStore interface {
	// Create inserts a validated set.
	Create(ctx context.Context, set *domain.FlashcardSet) error

	// GetByID returns ErrSetNotFound when the set does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error)

	// ListByUser returns the user's sets, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FlashcardSet, error)

	// Touch bumps the set's updated_at timestamp.
	Touch(ctx context.Context, id uuid.UUID) error

	// WithTx returns a store bound to tx.
	WithTx(tx DBTX) FlashcardSetStore
}
