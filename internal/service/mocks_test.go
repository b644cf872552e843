package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockSetStore is a mock implementation of store.FlashcardSetStore
type MockSetStore struct {
	mock.Mock
}

func (m *MockSetStore) Create(ctx context.Context, set *domain.FlashcardSet) error {
	return m.Called(ctx, set).Error(0)
}

func (m *MockSetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}

func (m *MockSetStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FlashcardSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlashcardSet), args.Error(1)
}

func (m *MockSetStore) Touch(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSetStore) WithTx(tx store.DBTX) store.FlashcardSetStore {
	return m
}

// MockFlashcardStore is a mock implementation of store.FlashcardStore
type MockFlashcardStore struct {
	mock.Mock
}

func (m *MockFlashcardStore) Create(ctx context.Context, card *domain.Flashcard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) ListBySet(ctx context.Context, setID uuid.UUID) ([]domain.Flashcard, error) {
	args := m.Called(ctx, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardStore) UpdateContent(ctx context.Context, card *domain.Flashcard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockFlashcardStore) UpdateSRS(ctx context.Context, card *domain.Flashcard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFlashcardStore) WithTx(tx store.DBTX) store.FlashcardStore {
	return m
}

// MockSessionLogStore is a mock implementation of store.SessionLogStore
type MockSessionLogStore struct {
	mock.Mock
}

func (m *MockSessionLogStore) Create(ctx context.Context, l *domain.SessionLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockSessionLogStore) ListBySet(ctx context.Context, userID, setID uuid.UUID) ([]domain.SessionLog, error) {
	args := m.Called(ctx, userID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionLog), args.Error(1)
}

// MockReportGenerator is a mock implementation of generation.ReportGenerator
type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) GenerateReport(ctx context.Context, req generation.ReportRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// passthroughTx runs fn directly; the mocks ignore the handle.
type passthroughTx struct {
	calls int
}

func (p *passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.DBTX) error) error {
	p.calls++
	return fn(ctx, nil)
}

// MockScheduler is a mock implementation of srs.Service
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Schedule(card *domain.Flashcard, q domain.Quality, now time.Time) (domain.SRSState, error) {
	args := m.Called(card, q, now)
	return args.Get(0).(domain.SRSState), args.Error(1)
}
