package study

import "fmt"

// State is the controller's mode. Exactly one is active at a time, so study
// and quiz sessions cannot overlap.
type State int

const (
	StateIdle State = iota
	StateBrowsing
	StateEditing
	StateStudying
	StateQuizzing
	// StateReportBuilding marks the hand-off from a finished study session to
	// browsing. It is entered and left under the controller lock, so State never
	// returns it; report progress is tracked by SessionReport.Done instead.
	StateReportBuilding
	StateEmptySet
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBrowsing:
		return "browsing"
	case StateEditing:
		return "editing"
	case StateStudying:
		return "studying"
	case StateQuizzing:
		return "quizzing"
	case StateReportBuilding:
		return "report_building"
	case StateEmptySet:
		return "empty_set"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// transition validates moving from one state to another. Any state may return
// to Idle when the controller closes.
func transition(from, to State) error {
	if to == StateIdle {
		return nil
	}

	var ok bool
	switch from {
	case StateIdle:
		ok = to == StateBrowsing || to == StateEmptySet
	case StateBrowsing:
		ok = to == StateBrowsing || to == StateEditing || to == StateStudying ||
			to == StateQuizzing || to == StateEmptySet
	case StateEditing:
		ok = to == StateBrowsing
	case StateStudying:
		ok = to == StateReportBuilding || to == StateBrowsing
	case StateQuizzing:
		ok = to == StateBrowsing
	case StateReportBuilding:
		ok = to == StateBrowsing
	case StateEmptySet:
		ok = to == StateBrowsing || to == StateEmptySet
	}

	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// Mode selects how Compose builds a session list.
type Mode int

const (
	// ModeBrowse lists every card in its stored order.
	ModeBrowse Mode = iota
	// ModeStudy lists the due cards, shuffled.
	ModeStudy
	// ModeQuiz lists every card, shuffled.
	ModeQuiz
)

func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeStudy:
		return "study"
	case ModeQuiz:
		return "quiz"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "browse":
		return ModeBrowse, nil
	case "study":
		return ModeStudy, nil
	case "quiz":
		return ModeQuiz, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
