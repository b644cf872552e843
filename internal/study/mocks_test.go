package study

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

// MockBackend implements every collaborator interface.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) FetchSetDetails(ctx context.Context, setID uuid.UUID) (*domain.SetDetails, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SetDetails), args.Error(1)
}

func (m *MockBackend) FetchDueCards(ctx context.Context, setID uuid.UUID) ([]domain.Flashcard, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

// UpdateSRS accepts either a *domain.Flashcard or a function producing one.
func (m *MockBackend) UpdateSRS(ctx context.Context, cardID uuid.UUID, q domain.Quality) (*domain.Flashcard, error) {
	args := m.Called(ctx, cardID, q)
	switch v := args.Get(0).(type) {
	case func(uuid.UUID, domain.Quality) *domain.Flashcard:
		return v(cardID, q), args.Error(1)
	case *domain.Flashcard:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBackend) LogSession(ctx context.Context, summary SessionSummary) error {
	return m.Called(ctx, summary).Error(0)
}

func (m *MockBackend) FetchHistory(ctx context.Context, setID uuid.UUID) ([]domain.SessionLog, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionLog), args.Error(1)
}

func (m *MockBackend) GenerateReport(ctx context.Context, in ReportInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) AddCard(ctx context.Context, setID uuid.UUID, in CardInput) (*domain.Flashcard, error) {
	args := m.Called(ctx, setID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockBackend) EditCard(ctx context.Context, cardID uuid.UUID, in CardInput) (*domain.Flashcard, error) {
	args := m.Called(ctx, cardID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockBackend) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return m.Called(ctx, cardID).Error(0)
}

type recordingNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Error(msg string, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Infos() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.infos)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.errors)
}

type recordingEmitter struct {
	mu    sync.Mutex
	types []events.Type
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, event.Type)
	return nil
}

func (e *recordingEmitter) Types() []events.Type {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.types)
}

// reverseShuffler makes shuffled order predictable.
type reverseShuffler struct {
	calls int
}

func (s *reverseShuffler) Shuffle(cards []domain.Flashcard) {
	s.calls++
	slices.Reverse(cards)
}

var testSetID = uuid.MustParse("5f0c9a64-1d2b-4c4e-9b7a-2f7d3c1e8a90")

func newTestCard(question string) domain.Flashcard {
	return domain.Flashcard{
		ID:       uuid.New(),
		SetID:    testSetID,
		Question: question,
		Answer:   "answer to " + question,
	}
}

func testCards(questions ...string) []domain.Flashcard {
	cards := make([]domain.Flashcard, len(questions))
	for i, q := range questions {
		cards[i] = newTestCard(q)
	}
	return cards
}

func scheduled(card domain.Flashcard, interval, repetitions int) *domain.Flashcard {
	card.Interval = null.IntFrom(interval)
	card.EaseFactor = null.Float64From(2.5)
	card.Repetitions = null.IntFrom(repetitions)
	card.DueDate = null.TimeFrom(time.Now().AddDate(0, 0, interval))
	return &card
}

func details(cards []domain.Flashcard) *domain.SetDetails {
	return &domain.SetDetails{
		FlashcardSet: domain.FlashcardSet{ID: testSetID, Title: "Cell Biology"},
		Cards:        cards,
		TotalCards:   len(cards),
	}
}

type fixture struct {
	backend  *MockBackend
	notifier *recordingNotifier
	emitter  *recordingEmitter
	shuffler *reverseShuffler
	ctrl     *Controller
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{
		backend:  &MockBackend{},
		notifier: &recordingNotifier{},
		emitter:  &recordingEmitter{},
		shuffler: &reverseShuffler{},
	}
	deps := Dependencies{
		Sets:     f.backend,
		Due:      f.backend,
		SRS:      f.backend,
		Sessions: f.backend,
		History:  f.backend,
		Reports:  f.backend,
		Cards:    f.backend,
		Notifier: f.notifier,
	}
	opts = append([]Option{WithShuffler(f.shuffler), WithEmitter(f.emitter)}, opts...)
	ctrl, err := NewController(deps, logger.Discard(), opts...)
	require.NoError(t, err)
	f.ctrl = ctrl
	t.Cleanup(ctrl.Close)
	return f
}

// load loads cards through a single FetchSetDetails call.
func (f *fixture) load(t *testing.T, cards []domain.Flashcard) {
	t.Helper()
	f.backend.On("FetchSetDetails", mock.Anything, testSetID).Return(details(cards), nil).Once()
	require.NoError(t, f.ctrl.Load(context.Background(), testSetID))
}

// study loads cards and starts a study session over due.
func (f *fixture) study(t *testing.T, cards, due []domain.Flashcard) {
	t.Helper()
	f.load(t, cards)
	f.composeStudy(t, due)
}

// composeStudy starts a study session over due on an already loaded set.
func (f *fixture) composeStudy(t *testing.T, due []domain.Flashcard) {
	t.Helper()
	f.backend.On("FetchDueCards", mock.Anything, testSetID).Return(due, nil).Once()
	require.NoError(t, f.ctrl.Compose(context.Background(), ModeStudy))
}

// expectReportSteps stubs the three background report steps.
func (f *fixture) expectReportSteps(fresh []domain.Flashcard) {
	f.backend.On("FetchSetDetails", mock.Anything, testSetID).Return(details(fresh), nil)
	f.backend.On("LogSession", mock.Anything, mock.Anything).Return(nil)
	f.backend.On("FetchHistory", mock.Anything, testSetID).Return([]domain.SessionLog{}, nil)
	f.backend.On("GenerateReport", mock.Anything, mock.Anything).Return("Solid session.", nil)
}

func (f *fixture) gradeCurrent(t *testing.T, q domain.Quality) {
	t.Helper()
	f.ctrl.Flip()
	require.NoError(t, f.ctrl.Grade(context.Background(), q))
}

func waitDone(t *testing.T, r *SessionReport) {
	t.Helper()
	require.NotNil(t, r)
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session report did not settle")
	}
}

func srsBump(interval, repetitions int, cards map[uuid.UUID]domain.Flashcard) func(uuid.UUID, domain.Quality) *domain.Flashcard {
	var mu sync.Mutex
	return func(id uuid.UUID, _ domain.Quality) *domain.Flashcard {
		mu.Lock()
		defer mu.Unlock()
		return scheduled(cards[id], interval, repetitions)
	}
}
