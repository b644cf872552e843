package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
)

// Controller drives browsing, study and quiz sessions over one flashcard set.
type Controller struct {
	deps     Dependencies
	shuffler Shuffler
	emitter  events.EventEmitter
	now      func() time.Time
	logger   *slog.Logger

	gradeLevel string

	mu    sync.Mutex
	state State
	set   domain.FlashcardSet
	// cards is the full set in stored order; active is the working list of
	// the current mode.
	cards         []domain.Flashcard
	active        []domain.Flashcard
	index         int
	showingAnswer bool
	mastery       int

	records []PerformanceRecord
	quiz    *QuizSession
	editing uuid.UUID
	busy    bool
	closed  bool

	reportGen uint64
	report    *SessionReport

	// cardSeq counts local card changes. touched holds the sequence of the
	// last change per card and loadSeq the sequence of the last load, so a
	// report refresh can skip cards changed after it started.
	cardSeq uint64
	loadSeq uint64
	touched map[uuid.UUID]uint64
}

// Option customises a Controller.
type Option func(*Controller)

// WithShuffler replaces the default Fisher-Yates shuffler.
func WithShuffler(s Shuffler) Option {
	return func(c *Controller) {
		if s != nil {
			c.shuffler = s
		}
	}
}

// WithEmitter publishes session events to e.
func WithEmitter(e events.EventEmitter) Option {
	return func(c *Controller) { c.emitter = e }
}

// WithGradeLevel passes the learner's grade level to the report generator.
func WithGradeLevel(level string) Option {
	return func(c *Controller) { c.gradeLevel = level }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController validates deps and returns an idle controller.
func NewController(deps Dependencies, l *slog.Logger, opts ...Option) (*Controller, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if l == nil {
		l = slog.Default()
	}

	c := &Controller{
		deps:     deps,
		shuffler: NewFisherYates(nil),
		now:      time.Now,
		logger:   l.With(slog.String("component", "study_controller")),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Load fetches a set and enters Browsing, or EmptySet when it has no cards.
func (c *Controller) Load(ctx context.Context, setID uuid.UUID) error {
	c.mu.Lock()
	if err := c.checkIdleLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.state != StateIdle && c.state != StateBrowsing && c.state != StateEmptySet {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot load a set while %s", ErrInvalidTransition, state)
	}
	c.busy = true
	c.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, c.logger)
	details, err := c.deps.Sets.FetchSetDetails(ctx, setID)
	if err == nil && details == nil {
		err = errEmptyResponse
	}

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		log.Error("failed to load flashcard set",
			slog.String("set_id", setID.String()),
			slog.String("error", err.Error()))
		c.deps.Notifier.Error("Could not load the flashcard set", err)
		return fmt.Errorf("load set %s: %w", setID, err)
	}

	c.set = details.FlashcardSet
	c.cards = slices.Clone(details.Cards)
	c.cardSeq++
	c.loadSeq = c.cardSeq
	c.touched = make(map[uuid.UUID]uint64)
	c.mastery = domain.MasteryPercentage(c.cards)
	c.records = nil
	c.quiz = nil
	c.editing = uuid.Nil
	c.resetBrowseLocked()

	next := StateBrowsing
	if len(c.cards) == 0 {
		next = StateEmptySet
	}
	err = c.setStateLocked(next)
	c.mu.Unlock()

	log.Debug("flashcard set loaded",
		slog.String("set_id", setID.String()),
		slog.Int("cards", len(details.Cards)),
		slog.String("state", next.String()))
	return err
}

// Compose builds a new session list for mode and resets the position and
// answer flag. ModeStudy with no due cards leaves the controller browsing and
// returns ErrNothingDue.
func (c *Controller) Compose(ctx context.Context, mode Mode) error {
	c.mu.Lock()
	if err := c.checkIdleLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.state == StateEmptySet {
		c.mu.Unlock()
		return ErrEmptySet
	}
	if c.state == StateIdle {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.state != StateBrowsing {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot compose %s while %s", ErrInvalidTransition, mode, state)
	}

	switch mode {
	case ModeBrowse:
		c.resetBrowseLocked()
		c.mu.Unlock()
		return nil

	case ModeQuiz:
		list := slices.Clone(c.cards)
		c.shuffler.Shuffle(list)
		c.active = list
		c.quiz = newQuizSession(list)
		c.resetPositionLocked()
		err := c.setStateLocked(StateQuizzing)
		setID := c.set.ID
		c.mu.Unlock()
		if err != nil {
			return err
		}
		c.emit(ctx, events.SessionStarted, setID, events.SessionStartedPayload{Mode: mode.String(), Cards: len(list)})
		return nil

	case ModeStudy:
		return c.composeStudyLocked(ctx)

	default:
		c.mu.Unlock()
		return fmt.Errorf("%w: unknown mode %s", ErrInvalidTransition, mode)
	}
}

// composeStudyLocked is entered with c.mu held and releases it.
func (c *Controller) composeStudyLocked(ctx context.Context) error {
	setID := c.set.ID
	c.busy = true
	c.mu.Unlock()

	log := logger.FromContextOrDefault(ctx, c.logger)
	due, err := c.deps.Due.FetchDueCards(ctx, setID)

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.resetBrowseLocked()
		_ = c.setStateLocked(StateBrowsing)
		c.mu.Unlock()
		log.Error("failed to fetch due cards",
			slog.String("set_id", setID.String()),
			slog.String("error", err.Error()))
		c.deps.Notifier.Error("Could not load the cards due for review", err)
		return fmt.Errorf("fetch due cards: %w", err)
	}
	if len(due) == 0 {
		c.mu.Unlock()
		c.deps.Notifier.Info("No cards are due for review right now")
		c.emit(ctx, events.NothingDue, setID, nil)
		return ErrNothingDue
	}

	list := slices.Clone(due)
	c.shuffler.Shuffle(list)
	c.active = list
	c.records = nil
	c.resetPositionLocked()
	err = c.setStateLocked(StateStudying)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	log.Debug("study session composed", slog.String("set_id", setID.String()), slog.Int("cards", len(list)))
	c.emit(ctx, events.SessionStarted, setID, events.SessionStartedPayload{Mode: ModeStudy.String(), Cards: len(list)})
	return nil
}

// Close stops the controller. Report steps still running settle silently and
// their results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.reportGen++
	c.state = StateIdle
	c.active = nil
	c.records = nil
	c.quiz = nil
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Set returns the loaded set's metadata.
func (c *Controller) Set() domain.FlashcardSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set
}

// Cards returns a copy of the active list.
func (c *Controller) Cards() []domain.Flashcard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.active)
}

// AllCards returns a copy of the full set in stored order.
func (c *Controller) AllCards() []domain.Flashcard {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.cards)
}

// Mastery returns the mastery percentage of the full set.
func (c *Controller) Mastery() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mastery
}

// Records returns the confirmed grades of the running study session.
func (c *Controller) Records() []PerformanceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

// Report returns the latest session report, or nil before the first session
// ends.
func (c *Controller) Report() *SessionReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report
}

func (c *Controller) setStateLocked(to State) error {
	if err := transition(c.state, to); err != nil {
		return err
	}
	c.state = to
	return nil
}

func (c *Controller) checkIdleLocked() error {
	if c.closed {
		return ErrClosed
	}
	if c.busy {
		return ErrBusy
	}
	return nil
}

func (c *Controller) resetPositionLocked() {
	c.index = 0
	c.showingAnswer = false
}

func (c *Controller) resetBrowseLocked() {
	c.active = slices.Clone(c.cards)
	c.resetPositionLocked()
}

// replaceCardLocked swaps in an updated copy of a card wherever it appears.
func (c *Controller) replaceCardLocked(card domain.Flashcard) {
	for i := range c.cards {
		if c.cards[i].ID == card.ID {
			c.cards[i] = card
		}
	}
	for i := range c.active {
		if c.active[i].ID == card.ID {
			c.active[i] = card
		}
	}
	c.mastery = domain.MasteryPercentage(c.cards)
}

// touchCardLocked records a local change to cardID.
func (c *Controller) touchCardLocked(cardID uuid.UUID) {
	c.cardSeq++
	if c.touched == nil {
		c.touched = make(map[uuid.UUID]uint64)
	}
	c.touched[cardID] = c.cardSeq
}

func (c *Controller) findCardLocked(cardID uuid.UUID) (domain.Flashcard, bool) {
	for _, card := range c.cards {
		if card.ID == cardID {
			return card, true
		}
	}
	return domain.Flashcard{}, false
}

// emit publishes an event when an emitter is configured. Handler errors are
// logged and otherwise ignored.
func (c *Controller) emit(ctx context.Context, t events.Type, setID uuid.UUID, payload any) {
	if c.emitter == nil {
		return
	}
	log := logger.FromContextOrDefault(ctx, c.logger)
	event, err := events.NewEvent(t, setID, payload)
	if err != nil {
		log.Error("failed to build event", slog.String("event_type", string(t)), slog.String("error", err.Error()))
		return
	}
	if err := c.emitter.EmitEvent(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		log.Debug("event handler failed", slog.String("event_type", string(t)), slog.String("error", err.Error()))
	}
}
