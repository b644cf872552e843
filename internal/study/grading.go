package study

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
)

// PerformanceRecord is one confirmed grade of a study session.
type PerformanceRecord struct {
	CardID   uuid.UUID
	Question string
	Quality  domain.Quality
}

// Grade rates the current card. The rating is recorded only once the SRS
// update succeeds; the session then advances, or ends on its last card.
// A failed update leaves the session where it was.
func (c *Controller) Grade(ctx context.Context, quality domain.Quality) error {
	if !quality.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuality, int(quality))
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return ErrGradeInProgress
	}
	if c.state != StateStudying || !c.hasCurrentLocked() || !c.showingAnswer {
		c.mu.Unlock()
		return ErrGradeNotAllowed
	}
	card := c.active[c.index]
	c.busy = true
	c.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, c.logger)
	updated, err := c.deps.SRS.UpdateSRS(ctx, card.ID, quality)

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		log.Error("failed to update SRS data",
			slog.String("card_id", card.ID.String()),
			slog.String("quality", quality.String()),
			slog.String("error", err.Error()))
		c.deps.Notifier.Error("Could not save your rating", err)
		return fmt.Errorf("update SRS for card %s: %w", card.ID, err)
	}

	c.records = append(c.records, PerformanceRecord{
		CardID:   card.ID,
		Question: card.Question,
		Quality:  quality,
	})
	if updated != nil && updated.ID == card.ID {
		c.replaceCardLocked(*updated)
		c.touchCardLocked(updated.ID)
	}

	setID := c.set.ID
	graded := events.CardGradedPayload{
		CardID:            card.ID,
		Quality:           quality,
		Position:          c.index + 1,
		Total:             len(c.active),
		MasteryPercentage: c.mastery,
	}

	if c.index < len(c.active)-1 {
		c.nextLocked()
		c.mu.Unlock()
		c.emit(ctx, events.CardGraded, setID, graded)
		return nil
	}

	report := c.finishStudyLocked(ctx)
	c.mu.Unlock()

	c.emit(ctx, events.CardGraded, setID, graded)
	c.emitCompleted(ctx, report)
	return nil
}

// ExitStudy leaves study mode. With at least one confirmed grade the session
// report is built exactly as if the last card had been graded.
func (c *Controller) ExitStudy(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return ErrGradeInProgress
	}
	if c.state != StateStudying {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: not studying (%s)", ErrInvalidTransition, state)
	}

	if len(c.records) == 0 {
		c.resetBrowseLocked()
		err := c.setStateLocked(StateBrowsing)
		c.mu.Unlock()
		return err
	}

	report := c.finishStudyLocked(ctx)
	c.mu.Unlock()

	c.emitCompleted(ctx, report)
	return nil
}

func (c *Controller) emitCompleted(ctx context.Context, report *SessionReport) {
	c.emit(ctx, events.SessionCompleted, report.SetID, events.SessionCompletedPayload{
		CardsReviewed: report.CardsReviewed,
		Counts:        report.Tally.Counts,
	})
}
