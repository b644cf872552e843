package study

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
)

// QuizOutcome is the result recorded for one quiz card.
type QuizOutcome int

const (
	Unanswered QuizOutcome = iota
	Correct
	Incorrect
)

func (o QuizOutcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// QuizScore tallies the outcomes of a quiz.
type QuizScore struct {
	Correct    int
	Incorrect  int
	Unanswered int
}

// QuizSession tracks the outcome of every card of a quiz.
type QuizSession struct {
	outcomes map[uuid.UUID]QuizOutcome
}

func newQuizSession(cards []domain.Flashcard) *QuizSession {
	q := &QuizSession{outcomes: make(map[uuid.UUID]QuizOutcome, len(cards))}
	for _, card := range cards {
		q.outcomes[card.ID] = Unanswered
	}
	return q
}

func (q *QuizSession) score() QuizScore {
	var s QuizScore
	for _, o := range q.outcomes {
		switch o {
		case Correct:
			s.Correct++
		case Incorrect:
			s.Incorrect++
		default:
			s.Unanswered++
		}
	}
	return s
}

// Answer marks the current quiz card correct or incorrect and moves on. A card
// may be re-marked after navigating back to it.
func (c *Controller) Answer(correct bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.state != StateQuizzing || c.quiz == nil || !c.hasCurrentLocked() || !c.showingAnswer {
		return ErrAnswerNotAllowed
	}

	outcome := Incorrect
	if correct {
		outcome = Correct
	}
	c.quiz.outcomes[c.active[c.index].ID] = outcome
	c.nextLocked()
	return nil
}

// Outcome returns what was recorded for cardID in the running quiz.
func (c *Controller) Outcome(cardID uuid.UUID) QuizOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quiz == nil {
		return Unanswered
	}
	return c.quiz.outcomes[cardID]
}

// Score returns the running quiz tally.
func (c *Controller) Score() QuizScore {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quiz == nil {
		return QuizScore{}
	}
	return c.quiz.score()
}

// FinishQuiz ends the quiz and returns its final score.
func (c *Controller) FinishQuiz(ctx context.Context) (QuizScore, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return QuizScore{}, ErrClosed
	}
	if c.state != StateQuizzing || c.quiz == nil {
		state := c.state
		c.mu.Unlock()
		return QuizScore{}, fmt.Errorf("%w: no quiz running (%s)", ErrInvalidTransition, state)
	}

	score := c.quiz.score()
	c.quiz = nil
	c.resetBrowseLocked()
	err := c.setStateLocked(StateBrowsing)
	setID := c.set.ID
	c.mu.Unlock()
	if err != nil {
		return score, err
	}

	c.emit(ctx, events.QuizFinished, setID, events.QuizFinishedPayload{
		Correct:    score.Correct,
		Incorrect:  score.Incorrect,
		Unanswered: score.Unanswered,
	})
	return score, nil
}
