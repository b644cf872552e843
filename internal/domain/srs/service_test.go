package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestScheduleNewCard(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	card := &domain.Flashcard{ID: uuid.New(), SetID: uuid.New(), Question: "q", Answer: "a"}

	state, err := svc.Schedule(card, domain.QualityEasy, now)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Interval)
	assert.Equal(t, 1, state.Repetitions)
	assert.Equal(t, 2.5, state.EaseFactor)
	assert.Equal(t, now.AddDate(0, 0, 2), state.DueDate)
	assert.False(t, card.Reviewed(), "card must not be mutated")
}

func TestScheduleReviewedCard(t *testing.T) {
	t.Parallel()
	svc := NewServiceWithParams(NewParams(Overrides{AgainReviewMinutes: 30}))
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	card := &domain.Flashcard{
		ID:          uuid.New(),
		SetID:       uuid.New(),
		Question:    "q",
		Answer:      "a",
		Interval:    null.IntFrom(20),
		EaseFactor:  null.Float64From(2.0),
		Repetitions: null.IntFrom(4),
	}

	state, err := svc.Schedule(card, domain.QualityAgain, now)
	require.NoError(t, err)
	assert.Equal(t, 0, state.Interval)
	assert.Equal(t, 0, state.Repetitions)
	assert.InDelta(t, 1.8, state.EaseFactor, 0.0001)
	assert.Equal(t, now.Add(30*time.Minute), state.DueDate)
}

func TestScheduleErrors(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	_, err := svc.Schedule(nil, domain.QualityGood, time.Now())
	assert.True(t, errors.Is(err, ErrNilCard))

	_, err = svc.Schedule(&domain.Flashcard{}, domain.Quality(9), time.Now())
	assert.True(t, errors.Is(err, ErrInvalidQuality))
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	p := NewParams(Overrides{HardModifier: 1.1, FirstEasyInterval: 4})
	assert.Equal(t, 1.1, p.IntervalModifier[domain.QualityHard])
	assert.Equal(t, 4, p.FirstIntervals[domain.QualityEasy])
	assert.Equal(t, 1.3, p.MinEaseFactor, "defaults are kept")
}
