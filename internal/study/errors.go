package study

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingDue is returned by Compose(ModeStudy) when no card is due.
	ErrNothingDue = errors.New("no cards are due for review")

	// ErrEmptySet is returned when the loaded set has no cards at all.
	ErrEmptySet = errors.New("flashcard set has no cards")

	// ErrInvalidTransition is returned for operations the current state does
	// not allow.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrGradeNotAllowed is returned when grading without a current card or
	// before the answer is shown.
	ErrGradeNotAllowed = errors.New("grading requires a shown answer in study mode")

	// ErrAnswerNotAllowed is the quiz counterpart of ErrGradeNotAllowed.
	ErrAnswerNotAllowed = errors.New("answering requires a shown answer in quiz mode")

	// ErrBusy is returned while another collaborator call is in flight.
	ErrBusy = errors.New("another operation is in progress")

	// ErrGradeInProgress is returned for a grade issued while the previous one
	// is still being saved.
	ErrGradeInProgress = fmt.Errorf("%w: grade not yet saved", ErrBusy)

	// ErrCardNotFound is returned for card ids that are not in the loaded set.
	ErrCardNotFound = errors.New("card is not in the loaded set")

	// ErrNotLoaded is returned before a set has been loaded.
	ErrNotLoaded = errors.New("no flashcard set loaded")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("study controller closed")

	// ErrMissingDependency is returned by NewController for nil collaborators.
	ErrMissingDependency = errors.New("missing collaborator")

	errEmptyResponse = errors.New("collaborator returned no data")
)
