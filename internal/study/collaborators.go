package study

import (
	"context"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
)

// SetFetcher loads a set with all of its cards and derived counters.
type SetFetcher interface {
	FetchSetDetails(ctx context.Context, setID uuid.UUID) (*domain.SetDetails, error)
}

// DueFetcher lists the cards of a set that are due now.
type DueFetcher interface {
	FetchDueCards(ctx context.Context, setID uuid.UUID) ([]domain.Flashcard, error)
}

// SRSUpdater applies a quality rating to a card. The returned card carries the
// new scheduling fields and acknowledges the update.
type SRSUpdater interface {
	UpdateSRS(ctx context.Context, cardID uuid.UUID, quality domain.Quality) (*domain.Flashcard, error)
}

// SessionSummary is what gets persisted when a study session ends.
type SessionSummary struct {
	SetID         uuid.UUID
	CardsReviewed int
	Performance   domain.PerformanceCounts
	MasteryAtEnd  int
}

// SessionLogger persists finished sessions.
type SessionLogger interface {
	LogSession(ctx context.Context, summary SessionSummary) error
}

// HistoryFetcher lists the past sessions of a set, oldest first.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context, setID uuid.UUID) ([]domain.SessionLog, error)
}

// ReportInput is everything the narrative report is written from.
type ReportInput struct {
	SetID       uuid.UUID
	SetTitle    string
	Performance []generation.PerformanceEntry
	// GradeLevel is empty when unknown.
	GradeLevel string
}

// ReportGenerator writes the narrative end-of-session report.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, in ReportInput) (string, error)
}

// CardEditor mutates the cards of a set.
type CardEditor interface {
	AddCard(ctx context.Context, setID uuid.UUID, in CardInput) (*domain.Flashcard, error)
	EditCard(ctx context.Context, cardID uuid.UUID, in CardInput) (*domain.Flashcard, error)
	DeleteCard(ctx context.Context, cardID uuid.UUID) error
}

// Notifier shows short messages to the learner.
type Notifier interface {
	Info(msg string)
	Error(msg string, err error)
}

// AnswerInput is a source of typed or spoken answers owned by whoever runs a
// session. Start begins delivering answers until ctx ends or Stop is called;
// Stop releases the underlying device and closes the channel.
type AnswerInput interface {
	Start(ctx context.Context) (<-chan string, error)
	Stop() error
}

// Dependencies groups the collaborators a Controller needs.
type Dependencies struct {
	Sets     SetFetcher
	Due      DueFetcher
	SRS      SRSUpdater
	Sessions SessionLogger
	History  HistoryFetcher
	Reports  ReportGenerator
	Cards    CardEditor
	Notifier Notifier
}

func (d Dependencies) validate() error {
	missing := ""
	switch {
	case d.Sets == nil:
		missing = "set fetcher"
	case d.Due == nil:
		missing = "due fetcher"
	case d.SRS == nil:
		missing = "SRS updater"
	case d.Sessions == nil:
		missing = "session logger"
	case d.History == nil:
		missing = "history fetcher"
	case d.Reports == nil:
		missing = "report generator"
	case d.Cards == nil:
		missing = "card editor"
	case d.Notifier == nil:
		missing = "notifier"
	}
	if missing != "" {
		return domain.NewValidationError("dependencies", missing+" cannot be nil", ErrMissingDependency)
	}
	return nil
}
