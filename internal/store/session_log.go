package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// SessionLogStore persists finished study session summaries.
type SessionLogStore interface {
	Create(ctx context.Context, log *domain.SessionLog) error

	// ListBySet returns the user's sessions for a set, oldest first.
	ListBySet(ctx context.Context, userID, setID uuid.UUID) ([]domain.SessionLog, error)
}
