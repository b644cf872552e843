package domain

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceCounts is the number of ratings given per quality in one session.
type PerformanceCounts struct {
	Again int `json:"again"`
	Hard  int `json:"hard"`
	Good  int `json:"good"`
	Easy  int `json:"easy"`
}

// Add increments the bucket for q. Invalid ratings are ignored.
func (p *PerformanceCounts) Add(q Quality) {
	switch q {
	case QualityAgain:
		p.Again++
	case QualityHard:
		p.Hard++
	case QualityGood:
		p.Good++
	case QualityEasy:
		p.Easy++
	}
}

// Count returns the bucket for q.
func (p PerformanceCounts) Count(q Quality) int {
	switch q {
	case QualityAgain:
		return p.Again
	case QualityHard:
		return p.Hard
	case QualityGood:
		return p.Good
	case QualityEasy:
		return p.Easy
	}
	return 0
}

// Total is the sum of all buckets.
func (p PerformanceCounts) Total() int {
	return p.Again + p.Hard + p.Good + p.Easy
}

// SessionLog is the persisted summary of one finished study session.
type SessionLog struct {
	ID            uuid.UUID         `json:"id"`
	SetID         uuid.UUID         `json:"set_id"`
	UserID        uuid.UUID         `json:"user_id"`
	CardsReviewed int               `json:"cards_reviewed"`
	Performance   PerformanceCounts `json:"performance"`
	MasteryAtEnd  int               `json:"mastery_at_end"`
	CompletedAt   time.Time         `json:"completed_at"`
}

// NewSessionLog validates and stamps a session summary.
func NewSessionLog(
	userID, setID uuid.UUID,
	cardsReviewed int,
	performance PerformanceCounts,
	masteryAtEnd int,
) (*SessionLog, error) {
	l := &SessionLog{
		ID:            uuid.New(),
		SetID:         setID,
		UserID:        userID,
		CardsReviewed: cardsReviewed,
		Performance:   performance,
		MasteryAtEnd:  masteryAtEnd,
		CompletedAt:   time.Now().UTC(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *SessionLog) Validate() error {
	if l.SetID == uuid.Nil {
		return NewValidationError("set_id", "cannot be empty", ErrInvalidID)
	}
	if l.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if l.CardsReviewed < 0 {
		return NewValidationError("cards_reviewed", "cannot be negative", ErrValidation)
	}
	p := l.Performance
	if p.Again < 0 || p.Hard < 0 || p.Good < 0 || p.Easy < 0 {
		return NewValidationError("performance", "counts cannot be negative", ErrValidation)
	}
	if l.MasteryAtEnd < 0 || l.MasteryAtEnd > 100 {
		return NewValidationError("mastery_at_end", "must be between 0 and 100", ErrValidation)
	}
	return nil
}
