package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// FlashcardStore persists flashcards and their SRS fields.
type FlashcardStore interface {
	// Create inserts a validated card. Returns ErrForeignKey when the set is missing.
	Create(ctx context.Context, card *domain.Flashcard) error

	// GetByID returns ErrCardNotFound when the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// ListBySet returns every card of a set in creation order.
	ListBySet(ctx context.Context, setID uuid.UUID) ([]domain.Flashcard, error)

	// UpdateContent replaces question and answer text.
	UpdateContent(ctx context.Context, card *domain.Flashcard) error

	// UpdateSRS writes the scheduling columns of a reviewed card.
	UpdateSRS(ctx context.Context, card *domain.Flashcard) error

	// Delete removes a card. Returns ErrCardNotFound when nothing was deleted.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a store bound to tx.
	WithTx(tx DBTX) FlashcardStore
}
