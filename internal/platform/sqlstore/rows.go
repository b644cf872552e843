package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/volatiletech/null/v8"
)

type setRow struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r setRow) toDomain() domain.FlashcardSet {
	return domain.FlashcardSet{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type flashcardRow struct {
	ID             uuid.UUID    `db:"id"`
	SetID          uuid.UUID    `db:"set_id"`
	Question       string       `db:"question"`
	Answer         string       `db:"answer"`
	DueDate        null.Time    `db:"due_date"`
	Interval       null.Int     `db:"interval_days"`
	EaseFactor     null.Float64 `db:"ease_factor"`
	Repetitions    null.Int     `db:"repetitions"`
	LastReviewedAt null.Time    `db:"last_reviewed_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

func utcNull(t null.Time) null.Time {
	if !t.Valid {
		return t
	}
	return null.TimeFrom(t.Time.UTC())
}

func (r flashcardRow) toDomain() domain.Flashcard {
	return domain.Flashcard{
		ID:             r.ID,
		SetID:          r.SetID,
		Question:       r.Question,
		Answer:         r.Answer,
		DueDate:        utcNull(r.DueDate),
		Interval:       r.Interval,
		EaseFactor:     r.EaseFactor,
		Repetitions:    r.Repetitions,
		LastReviewedAt: utcNull(r.LastReviewedAt),
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

type sessionRow struct {
	ID            uuid.UUID `db:"id"`
	SetID         uuid.UUID `db:"set_id"`
	UserID        uuid.UUID `db:"user_id"`
	CardsReviewed int       `db:"cards_reviewed"`
	Again         int       `db:"again_count"`
	Hard          int       `db:"hard_count"`
	Good          int       `db:"good_count"`
	Easy          int       `db:"easy_count"`
	MasteryAtEnd  int       `db:"mastery_at_end"`
	CompletedAt   time.Time `db:"completed_at"`
}

func (r sessionRow) toDomain() domain.SessionLog {
	return domain.SessionLog{
		ID:            r.ID,
		SetID:         r.SetID,
		UserID:        r.UserID,
		CardsReviewed: r.CardsReviewed,
		Performance: domain.PerformanceCounts{
			Again: r.Again,
			Hard:  r.Hard,
			Good:  r.Good,
			Easy:  r.Easy,
		},
		MasteryAtEnd: r.MasteryAtEnd,
		CompletedAt:  r.CompletedAt.UTC(),
	}
}
