package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorBoundaries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.load(t, testCards("a", "b", "c"))

	f.ctrl.Previous()
	assert.Equal(t, 0, f.ctrl.Index())

	f.ctrl.Next()
	f.ctrl.Next()
	assert.Equal(t, 2, f.ctrl.Index())

	f.ctrl.Flip()
	f.ctrl.Next()
	assert.Equal(t, 2, f.ctrl.Index())
	assert.True(t, f.ctrl.ShowingAnswer(), "boundary next is a no-op")

	f.ctrl.Previous()
	assert.Equal(t, 1, f.ctrl.Index())
	assert.False(t, f.ctrl.ShowingAnswer())
}

func TestFlip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.ctrl.Flip()
	assert.False(t, f.ctrl.ShowingAnswer(), "no current card")

	f.load(t, testCards("a"))
	f.ctrl.Flip()
	assert.True(t, f.ctrl.ShowingAnswer())
	f.ctrl.Flip()
	assert.False(t, f.ctrl.ShowingAnswer())
}

func TestShuffleResetsPosition(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cards := testCards("a", "b", "c")
	f.study(t, cards, cards)

	f.ctrl.Next()
	f.ctrl.Flip()
	f.ctrl.Shuffle()

	assert.Equal(t, 0, f.ctrl.Index())
	assert.False(t, f.ctrl.ShowingAnswer())
	assert.Equal(t, 2, f.shuffler.calls)
	assert.Equal(t, "a", f.ctrl.Cards()[0].Question, "reversed twice")
}

func TestProgress(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	cards := testCards("a", "b", "c", "d")
	f.load(t, cards)
	assert.Zero(t, f.ctrl.Progress(), "browsing")

	f.composeStudy(t, cards)
	assert.InDelta(t, 25.0, f.ctrl.Progress(), 0.001)
	f.ctrl.Next()
	f.ctrl.Next()
	assert.InDelta(t, 75.0, f.ctrl.Progress(), 0.001)
	f.ctrl.Next()
	assert.InDelta(t, 100.0, f.ctrl.Progress(), 0.001)
}
