package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/store"
)

// ReportService writes narrative session reports for sets the user owns.
type ReportService interface {
	GenerateReport(
		ctx context.Context,
		userID, setID uuid.UUID,
		performance []generation.PerformanceEntry,
		gradeLevel string,
	) (string, error)
}

type reportService struct {
	sets      store.FlashcardSetStore
	generator generation.ReportGenerator
	logger    *slog.Logger
}

var _ ReportService = (*reportService)(nil)

func NewReportService(
	sets store.FlashcardSetStore,
	generator generation.ReportGenerator,
	l *slog.Logger,
) (ReportService, error) {
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if generator == nil {
		return nil, domain.NewValidationError("generator", "cannot be nil", domain.ErrValidation)
	}
	if l == nil {
		l = slog.Default()
	}
	return &reportService{
		sets:      sets,
		generator: generator,
		logger:    l.With(slog.String("component", "report_service")),
	}, nil
}

func (s *reportService) GenerateReport(
	ctx context.Context,
	userID, setID uuid.UUID,
	performance []generation.PerformanceEntry,
	gradeLevel string,
) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(performance) == 0 {
		return "", ErrNoPerformance
	}
	set, err := ownedSet(ctx, s.sets, userID, setID)
	if err != nil {
		return "", err
	}

	req := generation.ReportRequest{
		SetTitle:    set.Title,
		Performance: performance,
		GradeLevel:  gradeLevel,
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	report, err := s.generator.GenerateReport(ctx, req)
	if err != nil {
		log.Error("report generation failed",
			slog.String("set_id", setID.String()),
			slog.String("error", err.Error()))
		return "", NewServiceError("report", "generate", "language model request failed", err)
	}

	log.Info("session report generated",
		slog.String("set_id", setID.String()),
		slog.Int("entries", len(performance)))
	return report, nil
}
