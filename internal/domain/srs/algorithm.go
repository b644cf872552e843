package srs

import (
	"time"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// nextEaseFactor shifts the ease factor by the rating's adjustment and clamps it.
func nextEaseFactor(current float64, q domain.Quality, p *Params) float64 {
	ef := current + p.EaseAdjustment[q]
	if ef < p.MinEaseFactor {
		return p.MinEaseFactor
	}
	if ef > p.MaxEaseFactor {
		return p.MaxEaseFactor
	}
	return ef
}

// nextInterval computes the interval in days. repetitions is the count before
// this review; zero with a positive interval means the card just lapsed.
func nextInterval(current, repetitions int, ef float64, q domain.Quality, p *Params) int {
	if q == domain.QualityAgain {
		return 0
	}
	if current == 0 {
		return p.FirstIntervals[q]
	}
	if repetitions == 0 && q == domain.QualityGood {
		return int(float64(current) * p.LapseGoodModifier)
	}

	modifier := p.IntervalModifier[q]
	switch q {
	case domain.QualityGood:
		modifier = ef
	case domain.QualityEasy:
		modifier *= ef
	}
	return int(float64(current) * modifier)
}

func nextDueDate(interval int, q domain.Quality, now time.Time, p *Params) time.Time {
	if q == domain.QualityAgain {
		return now.Add(time.Duration(p.AgainReviewMinutes) * time.Minute)
	}
	return now.AddDate(0, 0, interval)
}

// schedule derives the state that follows rating q on a card currently in state cur.
func schedule(cur domain.SRSState, q domain.Quality, now time.Time, p *Params) domain.SRSState {
	next := domain.SRSState{
		EaseFactor: nextEaseFactor(cur.EaseFactor, q, p),
	}
	if q == domain.QualityAgain {
		next.Repetitions = 0
	} else {
		next.Repetitions = cur.Repetitions + 1
	}
	next.Interval = nextInterval(cur.Interval, cur.Repetitions, next.EaseFactor, q, p)
	next.DueDate = nextDueDate(next.Interval, q, now, p)
	return next
}
