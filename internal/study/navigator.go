package study

import "github.com/joshuaking1/cognispark-ai-sub000/internal/domain"

// Current returns the card at the current position.
func (c *Controller) Current() (domain.Flashcard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasCurrentLocked() {
		return domain.Flashcard{}, false
	}
	return c.active[c.index], true
}

// Index returns the current position in the active list.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// ShowingAnswer reports whether the current card is flipped.
func (c *Controller) ShowingAnswer() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showingAnswer
}

// Flip toggles the answer of the current card. It does nothing without one.
func (c *Controller) Flip() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.navigableLocked() || !c.hasCurrentLocked() {
		return
	}
	c.showingAnswer = !c.showingAnswer
}

// Next moves forward one card. At the last card it does nothing.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextLocked()
}

// Previous moves back one card. At the first card it does nothing.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.navigableLocked() || c.index == 0 {
		return
	}
	c.index--
	c.showingAnswer = false
}

// Shuffle reorders the active list in place and returns to its first card.
func (c *Controller) Shuffle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.navigableLocked() || len(c.active) == 0 {
		return
	}
	c.shuffler.Shuffle(c.active)
	c.resetPositionLocked()
}

// Progress returns (index+1)/len*100 while studying and 0 otherwise.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateStudying || len(c.active) == 0 {
		return 0
	}
	return float64(c.index+1) / float64(len(c.active)) * 100
}

func (c *Controller) nextLocked() {
	if !c.navigableLocked() || c.index >= len(c.active)-1 {
		return
	}
	c.index++
	c.showingAnswer = false
}

func (c *Controller) hasCurrentLocked() bool {
	return c.index >= 0 && c.index < len(c.active)
}

// navigableLocked is false while a grade is being saved, so the card being
// graded stays current.
func (c *Controller) navigableLocked() bool {
	if c.closed || c.busy {
		return false
	}
	switch c.state {
	case StateBrowsing, StateStudying, StateQuizzing:
		return true
	}
	return false
}
