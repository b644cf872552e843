package study

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CardInput is the editable content of a card.
type CardInput struct {
	Question string `json:"question" validate:"required,max=4000"`
	Answer   string `json:"answer"   validate:"required,max=4000"`
}

// Validate trims both fields and checks them.
func (in *CardInput) Validate() error {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return nil
}

// AddCard creates a card in the loaded set. The local list changes only after
// the collaborator confirms.
func (c *Controller) AddCard(ctx context.Context, in CardInput) (*domain.Flashcard, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if err := c.checkIdleLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.state != StateBrowsing && c.state != StateEmptySet {
		state := c.state
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot add cards while %s", ErrInvalidTransition, state)
	}
	setID := c.set.ID
	c.busy = true
	c.mu.Unlock()

	card, err := c.deps.Cards.AddCard(ctx, setID, in)
	if err == nil && card == nil {
		err = errEmptyResponse
	}

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.mutationFailed(ctx, "Could not add the card", "add", uuid.Nil, err)
		return nil, fmt.Errorf("add card: %w", err)
	}

	c.cards = append(c.cards, *card)
	c.active = append(c.active, *card)
	c.touchCardLocked(card.ID)
	c.mastery = domain.MasteryPercentage(c.cards)
	err = c.setStateLocked(StateBrowsing)
	c.mu.Unlock()

	c.deps.Notifier.Info("Card added")
	return card, err
}

// BeginEdit opens cardID for editing.
func (c *Controller) BeginEdit(cardID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkIdleLocked(); err != nil {
		return err
	}
	if _, ok := c.findCardLocked(cardID); !ok {
		return ErrCardNotFound
	}
	if err := c.setStateLocked(StateEditing); err != nil {
		return err
	}
	c.editing = cardID
	return nil
}

// Editing returns the card being edited.
func (c *Controller) Editing() (domain.Flashcard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEditing {
		return domain.Flashcard{}, false
	}
	return c.findCardLocked(c.editing)
}

// SaveEdit stores the edited content. On failure the edit stays open.
func (c *Controller) SaveEdit(ctx context.Context, in CardInput) (*domain.Flashcard, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	if err := c.checkIdleLocked(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.state != StateEditing {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: no card is being edited", ErrInvalidTransition)
	}
	cardID := c.editing
	c.busy = true
	c.mu.Unlock()

	card, err := c.deps.Cards.EditCard(ctx, cardID, in)
	if err == nil && card == nil {
		err = errEmptyResponse
	}

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.mutationFailed(ctx, "Could not save the card", "edit", cardID, err)
		return nil, fmt.Errorf("edit card %s: %w", cardID, err)
	}

	c.replaceCardLocked(*card)
	c.touchCardLocked(card.ID)
	c.editing = uuid.Nil
	err = c.setStateLocked(StateBrowsing)
	c.mu.Unlock()

	c.deps.Notifier.Info("Card updated")
	return card, err
}

// CancelEdit closes the edit without saving.
func (c *Controller) CancelEdit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	if c.state != StateEditing {
		return fmt.Errorf("%w: no card is being edited", ErrInvalidTransition)
	}
	c.editing = uuid.Nil
	return c.setStateLocked(StateBrowsing)
}

// DeleteCard removes cardID from the set. Deleting the last card moves the
// controller to EmptySet.
func (c *Controller) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	c.mu.Lock()
	if err := c.checkIdleLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.state != StateBrowsing {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot delete cards while %s", ErrInvalidTransition, state)
	}
	if _, ok := c.findCardLocked(cardID); !ok {
		c.mu.Unlock()
		return ErrCardNotFound
	}
	c.busy = true
	c.mu.Unlock()

	err := c.deps.Cards.DeleteCard(ctx, cardID)

	c.mu.Lock()
	c.busy = false
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.mutationFailed(ctx, "Could not delete the card", "delete", cardID, err)
		return fmt.Errorf("delete card %s: %w", cardID, err)
	}

	byID := func(card domain.Flashcard) bool { return card.ID == cardID }
	c.cards = slices.DeleteFunc(c.cards, byID)
	c.active = slices.DeleteFunc(c.active, byID)
	if c.index >= len(c.active) {
		c.index = max(len(c.active)-1, 0)
	}
	c.showingAnswer = false
	c.mastery = domain.MasteryPercentage(c.cards)
	if len(c.cards) == 0 {
		err = c.setStateLocked(StateEmptySet)
	}
	c.mu.Unlock()

	c.deps.Notifier.Info("Card deleted")
	return err
}

func (c *Controller) mutationFailed(ctx context.Context, msg, op string, cardID uuid.UUID, err error) {
	logger.FromContextOrDefault(ctx, c.logger).Error("card mutation failed",
		slog.String("operation", op),
		slog.String("card_id", cardID.String()),
		slog.String("error", err.Error()))
	c.deps.Notifier.Error(msg, err)
}
