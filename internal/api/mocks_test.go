package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/api/shared"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/stretchr/testify/mock"
)

type MockFlashcardService struct {
	mock.Mock
}

func (m *MockFlashcardService) CreateSet(ctx context.Context, userID uuid.UUID, title, description string) (*domain.FlashcardSet, error) {
	args := m.Called(ctx, userID, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlashcardSet), args.Error(1)
}

func (m *MockFlashcardService) ListSets(ctx context.Context, userID uuid.UUID) ([]domain.FlashcardSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlashcardSet), args.Error(1)
}

func (m *MockFlashcardService) GetSetDetails(ctx context.Context, userID, setID uuid.UUID) (*domain.SetDetails, error) {
	args := m.Called(ctx, userID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SetDetails), args.Error(1)
}

func (m *MockFlashcardService) GetDueCards(ctx context.Context, userID, setID uuid.UUID) ([]domain.Flashcard, error) {
	args := m.Called(ctx, userID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardService) AddCard(ctx context.Context, userID, setID uuid.UUID, question, answer string) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, setID, question, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardService) EditCard(ctx context.Context, userID, cardID uuid.UUID, question, answer string) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, cardID, question, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID) error {
	return m.Called(ctx, userID, cardID).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(ctx context.Context, userID, cardID uuid.UUID, q domain.Quality) (*domain.Flashcard, error) {
	args := m.Called(ctx, userID, cardID, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) LogSession(
	ctx context.Context,
	userID, setID uuid.UUID,
	cardsReviewed int,
	performance domain.PerformanceCounts,
	masteryAtEnd int,
) (*domain.SessionLog, error) {
	args := m.Called(ctx, userID, setID, cardsReviewed, performance, masteryAtEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionLog), args.Error(1)
}

func (m *MockSessionService) History(ctx context.Context, userID, setID uuid.UUID) ([]domain.SessionLog, error) {
	args := m.Called(ctx, userID, setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionLog), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateReport(
	ctx context.Context,
	userID, setID uuid.UUID,
	performance []generation.PerformanceEntry,
	gradeLevel string,
) (string, error) {
	args := m.Called(ctx, userID, setID, performance, gradeLevel)
	return args.String(0), args.Error(1)
}

type testServices struct {
	flashcards *MockFlashcardService
	reviews    *MockReviewService
	sessions   *MockSessionService
	reports    *MockReportService
}

func newTestServices() *testServices {
	return &testServices{
		flashcards: &MockFlashcardService{},
		reviews:    &MockReviewService{},
		sessions:   &MockSessionService{},
		reports:    &MockReportService{},
	}
}

// router mounts every handler the way the server does, with userID injected
// in place of token authentication. uuid.Nil leaves the request anonymous.
func (s *testServices) router(userID uuid.UUID) http.Handler {
	l := logger.Discard()
	sets := NewSetHandler(s.flashcards, l)
	cards := NewCardHandler(s.flashcards, s.reviews, l)
	sessions := NewSessionHandler(s.sessions, s.reports, l)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/sets", sets.ListSets)
		r.Post("/sets", sets.CreateSet)
		r.Get("/sets/{id}", sets.GetSet)
		r.Get("/sets/{id}/due", sets.GetDueCards)
		r.Post("/sets/{id}/cards", cards.AddCard)
		r.Post("/sets/{id}/sessions", sessions.LogSession)
		r.Get("/sets/{id}/sessions", sessions.History)
		r.Post("/sets/{id}/report", sessions.GenerateReport)
		r.Put("/cards/{id}", cards.EditCard)
		r.Delete("/cards/{id}", cards.DeleteCard)
		r.Post("/cards/{id}/review", cards.SubmitReview)
	})
	return r
}
