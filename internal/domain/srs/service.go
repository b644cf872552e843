// Package srs schedules flashcard reviews with a configurable SM-2 variant.
package srs

import (
	"errors"
	"time"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

var (
	ErrNilCard        = errors.New("flashcard cannot be nil")
	ErrInvalidQuality = errors.New("invalid quality rating")
)

// Service computes the next scheduling state of a card after a rating.
type Service interface {
	// Schedule returns the state that follows rating q at time now. The card
	// is not modified.
	Schedule(card *domain.Flashcard, q domain.Quality, now time.Time) (domain.SRSState, error)
}

type defaultService struct {
	params *Params
}

// NewDefaultService returns a Service using NewDefaultParams.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams returns a Service using p, or the defaults when p is nil.
func NewServiceWithParams(p *Params) Service {
	if p == nil {
		p = NewDefaultParams()
	}
	return &defaultService{params: p}
}

func (s *defaultService) Schedule(card *domain.Flashcard, q domain.Quality, now time.Time) (domain.SRSState, error) {
	if card == nil {
		return domain.SRSState{}, ErrNilCard
	}
	if !q.Valid() {
		return domain.SRSState{}, ErrInvalidQuality
	}

	cur, ok := card.SRS()
	if !ok {
		cur = domain.SRSState{EaseFactor: s.params.InitialEaseFactor}
	}
	return schedule(cur, q, now.UTC(), s.params), nil
}
