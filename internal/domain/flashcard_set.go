package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxSetTitleLength = 200

// FlashcardSet is a named collection of cards owned by one user.
type FlashcardSet struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFlashcardSet creates a set owned by userID.
func NewFlashcardSet(userID uuid.UUID, title, description string) (*FlashcardSet, error) {
	now := time.Now().UTC()
	set := &FlashcardSet{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *FlashcardSet) Validate() error {
	if s.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if s.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}
	if len(s.Title) > MaxSetTitleLength {
		return NewValidationError("title", "is too long", ErrValidation)
	}
	return nil
}

// SetDetails is a set with its cards and the counters derived from them.
type SetDetails struct {
	FlashcardSet
	Cards             []Flashcard `json:"cards"`
	TotalCards        int         `json:"total_cards"`
	LearnedCards      int         `json:"learned_cards"`
	DueTodayCount     int         `json:"due_today_count"`
	MasteryPercentage int         `json:"mastery_percentage"`
}

// NewSetDetails derives the aggregate counters for cards as of now.
// A card is due today when it is due before the end of now's UTC day.
func NewSetDetails(set FlashcardSet, cards []Flashcard, now time.Time) *SetDetails {
	if cards == nil {
		cards = []Flashcard{}
	}
	endOfDay := now.UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Nanosecond)

	d := &SetDetails{
		FlashcardSet:      set,
		Cards:             cards,
		TotalCards:        len(cards),
		MasteryPercentage: MasteryPercentage(cards),
	}
	for i := range cards {
		if cards[i].Reviewed() && cards[i].Repetitions.Int > 0 {
			d.LearnedCards++
		}
		if cards[i].IsDue(endOfDay) {
			d.DueTodayCount++
		}
	}
	return d
}
