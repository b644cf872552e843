package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

// memoryBackend is an in-process stand-in for the API.
type memoryBackend struct {
	mu      sync.Mutex
	set     domain.FlashcardSet
	cards   []domain.Flashcard
	logged  []study.SessionSummary
	srsFail bool
}

func newMemoryBackend(questions ...string) *memoryBackend {
	b := &memoryBackend{set: domain.FlashcardSet{ID: uuid.New(), Title: "World Capitals"}}
	for _, q := range questions {
		card, _ := domain.NewFlashcard(b.set.ID, q, "answer to "+q)
		b.cards = append(b.cards, *card)
	}
	return b
}

func (b *memoryBackend) ListSets(context.Context) ([]domain.FlashcardSet, error) {
	return []domain.FlashcardSet{b.set}, nil
}

func (b *memoryBackend) CreateSet(_ context.Context, title, _ string) (*domain.FlashcardSet, error) {
	return &domain.FlashcardSet{ID: uuid.New(), Title: title}, nil
}

func (b *memoryBackend) FetchSetDetails(context.Context, uuid.UUID) (*domain.SetDetails, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.NewSetDetails(b.set, slices.Clone(b.cards), time.Now()), nil
}

func (b *memoryBackend) FetchDueCards(context.Context, uuid.UUID) ([]domain.Flashcard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var due []domain.Flashcard
	for _, c := range b.cards {
		if c.IsDue(time.Now()) {
			due = append(due, c)
		}
	}
	return due, nil
}

func (b *memoryBackend) UpdateSRS(_ context.Context, cardID uuid.UUID, _ domain.Quality) (*domain.Flashcard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.srsFail {
		return nil, errors.New("connection refused")
	}
	for i := range b.cards {
		if b.cards[i].ID == cardID {
			b.cards[i].Interval = null.IntFrom(1)
			b.cards[i].EaseFactor = null.Float64From(2.5)
			b.cards[i].Repetitions = null.IntFrom(1)
			b.cards[i].DueDate = null.TimeFrom(time.Now().Add(24 * time.Hour))
			card := b.cards[i]
			return &card, nil
		}
	}
	return nil, fmt.Errorf("card %s not found", cardID)
}

func (b *memoryBackend) LogSession(_ context.Context, s study.SessionSummary) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logged = append(b.logged, s)
	return nil
}

func (b *memoryBackend) FetchHistory(context.Context, uuid.UUID) ([]domain.SessionLog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	logs := make([]domain.SessionLog, 0, len(b.logged))
	for _, s := range b.logged {
		logs = append(logs, domain.SessionLog{
			CardsReviewed: s.CardsReviewed,
			Performance:   s.Performance,
			MasteryAtEnd:  s.MasteryAtEnd,
			CompletedAt:   time.Now(),
		})
	}
	return logs, nil
}

func (b *memoryBackend) GenerateReport(_ context.Context, in study.ReportInput) (string, error) {
	return "Nice work on " + in.SetTitle + ".", nil
}

func (b *memoryBackend) AddCard(_ context.Context, setID uuid.UUID, in study.CardInput) (*domain.Flashcard, error) {
	card, err := domain.NewFlashcard(setID, in.Question, in.Answer)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.cards = append(b.cards, *card)
	b.mu.Unlock()
	return card, nil
}

func (b *memoryBackend) EditCard(_ context.Context, cardID uuid.UUID, in study.CardInput) (*domain.Flashcard, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cards {
		if b.cards[i].ID == cardID {
			b.cards[i].Question, b.cards[i].Answer = in.Question, in.Answer
			card := b.cards[i]
			return &card, nil
		}
	}
	return nil, errors.New("not found")
}

func (b *memoryBackend) DeleteCard(_ context.Context, cardID uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cards = slices.DeleteFunc(b.cards, func(c domain.Flashcard) bool { return c.ID == cardID })
	return nil
}

func newTestShell(t *testing.T, backend *memoryBackend, script string) (*shell, *logger.TestLogBuffer) {
	t.Helper()
	out := &logger.TestLogBuffer{}
	term := newTerminal(out, logger.Discard())
	emitter := events.NewInMemoryEventEmitter(logger.Discard())
	emitter.RegisterHandler(term)

	ctrl, err := study.NewController(study.Dependencies{
		Sets:     backend,
		Due:      backend,
		SRS:      backend,
		Sessions: backend,
		History:  backend,
		Reports:  backend,
		Cards:    backend,
		Notifier: term,
	}, logger.Discard(), study.WithEmitter(emitter))
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	return newShell(ctrl, backend, term, newLineInput(strings.NewReader(script))), out
}

func TestShellStudySession(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend("Capital of Ghana?", "Capital of Kenya?")
	sh, out := newTestShell(t, backend, "")

	sh.exec(ctx, "open "+backend.set.ID.String())
	assert.Equal(t, study.StateBrowsing, sh.ctrl.State())

	sh.exec(ctx, "study")
	assert.Equal(t, study.StateStudying, sh.ctrl.State())
	assert.Contains(t, out.String(), "study session started with 2 cards")

	sh.exec(ctx, "good")
	assert.Contains(t, out.String(), "Flip the card before rating it.")

	for range 2 {
		sh.exec(ctx, "flip")
		sh.exec(ctx, "good")
	}
	assert.Equal(t, study.StateBrowsing, sh.ctrl.State())
	assert.Contains(t, out.String(), "session complete: 2 cards (again 0, hard 0, good 2, easy 0)")

	report := sh.ctrl.Report()
	require.NotNil(t, report)
	select {
	case <-report.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("report did not finish")
	}

	sh.exec(ctx, "report")
	text := out.String()
	assert.Contains(t, text, `Session report for "World Capitals": 2 cards reviewed`)
	assert.Contains(t, text, "Good   ## 2")
	assert.Contains(t, text, "Nice work on World Capitals.")
	require.Len(t, backend.logged, 1)

	sh.exec(ctx, "study")
	assert.Contains(t, out.String(), "* No cards are due for review right now")
}

func TestShellGradeFailureKeepsCard(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend("Capital of Togo?")
	backend.srsFail = true
	sh, out := newTestShell(t, backend, "")

	sh.exec(ctx, "open "+backend.set.ID.String())
	sh.exec(ctx, "study")
	sh.exec(ctx, "flip")
	sh.exec(ctx, "again")

	assert.Equal(t, study.StateStudying, sh.ctrl.State())
	assert.Empty(t, sh.ctrl.Records())
	assert.Contains(t, out.String(), "! Could not save your rating")
}

func TestShellCardEditing(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend()
	sh, out := newTestShell(t, backend, "")

	sh.exec(ctx, "open "+backend.set.ID.String())
	assert.Equal(t, study.StateEmptySet, sh.ctrl.State())
	assert.Contains(t, out.String(), "has no cards yet")

	sh.exec(ctx, "add Capital of Mali? | Bamako")
	assert.Equal(t, study.StateBrowsing, sh.ctrl.State())
	require.Len(t, sh.ctrl.AllCards(), 1)

	sh.exec(ctx, "edit Capital of Mali? | Bamako, on the Niger")
	card, ok := sh.ctrl.Current()
	require.True(t, ok)
	assert.Equal(t, "Bamako, on the Niger", card.Answer)
	assert.Equal(t, study.StateBrowsing, sh.ctrl.State())

	sh.exec(ctx, "add missing separator")
	assert.Contains(t, out.String(), "usage: <question> | <answer>")

	sh.exec(ctx, "delete")
	assert.Equal(t, study.StateEmptySet, sh.ctrl.State())
	assert.Empty(t, backend.cards)
}

func TestShellQuiz(t *testing.T) {
	ctx := context.Background()
	backend := newMemoryBackend("Capital of Chad?", "Capital of Niger?")
	sh, out := newTestShell(t, backend, "")

	sh.exec(ctx, "open "+backend.set.ID.String())
	sh.exec(ctx, "quiz")
	sh.exec(ctx, "right")
	assert.Contains(t, out.String(), "Flip the card before marking it.")

	sh.exec(ctx, "flip")
	sh.exec(ctx, "right")
	sh.exec(ctx, "finish")

	assert.Equal(t, study.StateBrowsing, sh.ctrl.State())
	assert.Contains(t, out.String(), "quiz finished: 1 correct, 0 incorrect, 1 unanswered")
}

func TestShellRunStopsOnQuit(t *testing.T) {
	backend := newMemoryBackend("Capital of Benin?")
	script := "open " + backend.set.ID.String() + "\nbogus\nflip\nquit\nnext\n"
	sh, out := newTestShell(t, backend, script)

	require.NoError(t, sh.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, `Unknown command "bogus"`)
	assert.Contains(t, text, "A: answer to Capital of Benin?")
}

func TestShellRunStopsAtEOF(t *testing.T) {
	sh, _ := newTestShell(t, newMemoryBackend(), "sets\n")
	assert.NoError(t, sh.run(context.Background()))
}

func TestParseCardInput(t *testing.T) {
	in, err := parseCardInput("  What is H2O? |  water ")
	require.NoError(t, err)
	assert.Equal(t, "What is H2O?", in.Question)
	assert.Equal(t, "water", in.Answer)

	_, err = parseCardInput("no answer |  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
