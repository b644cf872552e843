package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Question and answer text limits.
const (
	MaxCardTextLength = 4000
)

// Flashcard is one question/answer pair with its spaced-repetition state.
//
// Interval, EaseFactor and Repetitions are null until the first review and are
// always set together afterwards.
type Flashcard struct {
	ID             uuid.UUID    `json:"id"`
	SetID          uuid.UUID    `json:"set_id"`
	Question       string       `json:"question"`
	Answer         string       `json:"answer"`
	DueDate        null.Time    `json:"due_date"`
	Interval       null.Int     `json:"interval"`
	EaseFactor     null.Float64 `json:"ease_factor"`
	Repetitions    null.Int     `json:"repetitions"`
	LastReviewedAt null.Time    `json:"last_reviewed_at"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewFlashcard creates a never-reviewed card in the given set.
func NewFlashcard(setID uuid.UUID, question, answer string) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:        uuid.New(),
		SetID:     setID,
		Question:  strings.TrimSpace(question),
		Answer:    strings.TrimSpace(answer),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks identifiers, text and the all-or-none SRS invariant.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if c.SetID == uuid.Nil {
		return NewValidationError("set_id", "cannot be empty", ErrInvalidID)
	}
	if err := validateCardText("question", c.Question); err != nil {
		return err
	}
	if err := validateCardText("answer", c.Answer); err != nil {
		return err
	}

	set := 0
	for _, valid := range []bool{c.Interval.Valid, c.EaseFactor.Valid, c.Repetitions.Valid} {
		if valid {
			set++
		}
	}
	if set != 0 && set != 3 {
		return NewValidationError("srs", "fields are partially set", ErrInconsistentSRS)
	}
	if set == 3 && (c.Interval.Int < 0 || c.Repetitions.Int < 0) {
		return NewValidationError("srs", "counters cannot be negative", ErrInconsistentSRS)
	}
	return nil
}

// Reviewed reports whether the card has SRS state.
func (c *Flashcard) Reviewed() bool {
	return c.Interval.Valid && c.EaseFactor.Valid && c.Repetitions.Valid
}

// IsDue reports whether the card is eligible for review at now. Cards that
// have never been scheduled are always due.
func (c *Flashcard) IsDue(now time.Time) bool {
	if !c.DueDate.Valid {
		return true
	}
	return !c.DueDate.Time.After(now)
}

// ApplyReview replaces the SRS fields with a freshly scheduled state.
func (c *Flashcard) ApplyReview(s SRSState, reviewedAt time.Time) {
	c.Interval = null.IntFrom(s.Interval)
	c.EaseFactor = null.Float64From(s.EaseFactor)
	c.Repetitions = null.IntFrom(s.Repetitions)
	c.DueDate = null.TimeFrom(s.DueDate.UTC())
	c.LastReviewedAt = null.TimeFrom(reviewedAt.UTC())
	c.UpdatedAt = reviewedAt.UTC()
}

// SRS returns the card's scheduling state and whether it has one.
func (c *Flashcard) SRS() (SRSState, bool) {
	if !c.Reviewed() {
		return SRSState{}, false
	}
	return SRSState{
		Interval:    c.Interval.Int,
		EaseFactor:  c.EaseFactor.Float64,
		Repetitions: c.Repetitions.Int,
		DueDate:     c.DueDate.Time,
	}, true
}

// SRSState is the non-null view of a reviewed card's scheduling fields.
type SRSState struct {
	Interval    int
	EaseFactor  float64
	Repetitions int
	DueDate     time.Time
}

func validateCardText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "cannot be empty", ErrEmptyContent)
	}
	if len(value) > MaxCardTextLength {
		return NewValidationError(field, "is too long", ErrValidation)
	}
	return nil
}
