package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

// openTestDB returns a migrated SQLite database private to the test.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, config.DatabaseConfig{
		Driver: DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "study.db"),
	}, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db, DriverSQLite, logger.Discard()))
	return db
}

func createTestSet(t *testing.T, db *sqlx.DB, userID uuid.UUID) *domain.FlashcardSet {
	t.Helper()
	set, err := domain.NewFlashcardSet(userID, "Cell biology", "chapter 3")
	require.NoError(t, err)
	require.NoError(t, NewSetStore(db, logger.Discard()).Create(context.Background(), set))
	return set
}

func createTestCard(t *testing.T, db *sqlx.DB, setID uuid.UUID, question string, createdAt time.Time) *domain.Flashcard {
	t.Helper()
	card, err := domain.NewFlashcard(setID, question, "answer to "+question)
	require.NoError(t, err)
	card.CreatedAt = createdAt
	card.UpdatedAt = createdAt
	require.NoError(t, NewFlashcardStore(db, logger.Discard()).Create(context.Background(), card))
	return card
}
