package domain

import (
	"fmt"
	"strings"
)

// Quality is the learner's self-assessment of recall for one card.
type Quality int

const (
	QualityAgain Quality = 0
	QualityHard  Quality = 1
	QualityGood  Quality = 2
	QualityEasy  Quality = 3
)

// Qualities lists every rating in ascending order.
var Qualities = []Quality{QualityAgain, QualityHard, QualityGood, QualityEasy}

// Valid reports whether q is one of the four defined ratings.
func (q Quality) Valid() bool {
	return q >= QualityAgain && q <= QualityEasy
}

func (q Quality) String() string {
	switch q {
	case QualityAgain:
		return "Again"
	case QualityHard:
		return "Hard"
	case QualityGood:
		return "Good"
	case QualityEasy:
		return "Easy"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// Struggled reports whether the rating marks the card as challenging.
func (q Quality) Struggled() bool {
	return q == QualityAgain || q == QualityHard
}

// ParseQuality accepts a rating name (case-insensitive) or its digit.
func ParseQuality(s string) (Quality, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "again":
		return QualityAgain, nil
	case "1", "hard":
		return QualityHard, nil
	case "2", "good":
		return QualityGood, nil
	case "3", "easy":
		return QualityEasy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// MarshalText encodes q by name so JSON payloads read "Good" rather than 2.
func (q Quality) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, int(q))
	}
	return []byte(q.String()), nil
}

// UnmarshalText accepts anything ParseQuality does.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
