package study

import (
	"math/rand/v2"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// Shuffler reorders cards in place.
type Shuffler interface {
	Shuffle(cards []domain.Flashcard)
}

// FisherYates is an unbiased in-place shuffle.
type FisherYates struct {
	rng *rand.Rand
}

// NewFisherYates returns a shuffler drawing from src, or from the global
// generator when src is nil. A FisherYates with a source must not be shared
// across goroutines.
func NewFisherYates(src rand.Source) *FisherYates {
	if src == nil {
		return &FisherYates{}
	}
	return &FisherYates{rng: rand.New(src)}
}

func (f *FisherYates) Shuffle(cards []domain.Flashcard) {
	for i := len(cards) - 1; i > 0; i-- {
		j := f.intN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

func (f *FisherYates) intN(n int) int {
	if f.rng == nil {
		return rand.IntN(n)
	}
	return f.rng.IntN(n)
}
