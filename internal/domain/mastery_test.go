package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func reviewedCard(interval, repetitions int) Flashcard {
	return Flashcard{
		ID:          uuid.New(),
		SetID:       uuid.New(),
		Question:    "q",
		Answer:      "a",
		Interval:    null.IntFrom(interval),
		EaseFactor:  null.Float64From(2.5),
		Repetitions: null.IntFrom(repetitions),
	}
}

func newCard() Flashcard {
	return Flashcard{ID: uuid.New(), SetID: uuid.New(), Question: "q", Answer: "a"}
}

func TestIsMastered(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		card Flashcard
		want bool
	}{
		{"never reviewed", newCard(), false},
		{"three weeks", reviewedCard(21, 0), true},
		{"just under three weeks", reviewedCard(20, 2), false},
		{"three repetitions at a week", reviewedCard(7, 3), true},
		{"three repetitions under a week", reviewedCard(6, 5), false},
		{"two repetitions at two weeks", reviewedCard(14, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsMastered(tc.card))
		})
	}
}

func TestMasteryPercentage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, MasteryPercentage(nil), "empty set")
	assert.Equal(t, 0, MasteryPercentage([]Flashcard{newCard(), newCard()}))
	assert.Equal(t, 33, MasteryPercentage([]Flashcard{reviewedCard(30, 4), newCard(), newCard()}))
	assert.Equal(t, 67, MasteryPercentage([]Flashcard{reviewedCard(30, 4), reviewedCard(8, 3), newCard()}))
	assert.Equal(t, 100, MasteryPercentage([]Flashcard{reviewedCard(21, 1)}))
}

func randomSet(r *rand.Rand) []Flashcard {
	n := r.IntN(12)
	cards := make([]Flashcard, n)
	for i := range cards {
		if r.IntN(4) == 0 {
			cards[i] = newCard()
			continue
		}
		cards[i] = reviewedCard(r.IntN(40), r.IntN(6))
	}
	return cards
}

func TestMasteryPercentageBounds(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 500; i++ {
		p := MasteryPercentage(randomSet(r))
		assert.GreaterOrEqual(t, p, 0)
		assert.LessOrEqual(t, p, 100)
	}
}

func TestMasteryPercentageMonotonicInInterval(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 500; i++ {
		cards := randomSet(r)
		for j := range cards {
			if cards[j].Interval.Valid && cards[j].Interval.Int >= MasteredInterval {
				continue
			}
			before := MasteryPercentage(cards)

			bumped := make([]Flashcard, len(cards))
			copy(bumped, cards)
			bumped[j] = reviewedCard(MasteredInterval+r.IntN(10), 0)

			assert.GreaterOrEqual(t, MasteryPercentage(bumped), before)
		}
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 300, Percent(3, 1))
}
