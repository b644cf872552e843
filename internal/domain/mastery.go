package domain

import "math"

// Mastery thresholds in days.
const (
	MasteredInterval       = 21
	MasteredRepeatInterval = 7
	MasteredRepetitions    = 3
)

// IsMastered reports whether a card counts as well learned: an interval of at
// least three weeks, or at least three successful repetitions with an interval
// of a week or more.
func IsMastered(c Flashcard) bool {
	if !c.Interval.Valid {
		return false
	}
	interval := c.Interval.Int
	if interval >= MasteredInterval {
		return true
	}
	return c.Repetitions.Valid && c.Repetitions.Int >= MasteredRepetitions && interval >= MasteredRepeatInterval
}

// MasteryPercentage returns the rounded share of mastered cards, 0 for an empty set.
func MasteryPercentage(cards []Flashcard) int {
	if len(cards) == 0 {
		return 0
	}
	mastered := 0
	for _, c := range cards {
		if IsMastered(c) {
			mastered++
		}
	}
	return Percent(mastered, len(cards))
}

// Percent returns round(part/total*100), 0 when total is not positive.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
