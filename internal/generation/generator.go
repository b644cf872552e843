package generation

import (
	"context"
	"strings"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// PerformanceEntry is one graded card as seen by the report writer.
type PerformanceEntry struct {
	Question string         `json:"question" validate:"required"`
	Quality  domain.Quality `json:"quality" validate:"gte=0,lte=3"`
}

// ReportRequest carries everything a narrative report is written from.
type ReportRequest struct {
	SetTitle    string
	Performance []PerformanceEntry
	// GradeLevel is empty when the learner's level is unknown.
	GradeLevel string
}

// Validate checks the request before it reaches the model.
func (r ReportRequest) Validate() error {
	if strings.TrimSpace(r.SetTitle) == "" {
		return domain.NewValidationError("set_title", "cannot be empty", domain.ErrEmptyContent)
	}
	if len(r.Performance) == 0 {
		return ErrEmptyPerformance
	}
	for _, p := range r.Performance {
		if !p.Quality.Valid() {
			return domain.ErrInvalidQuality
		}
	}
	return nil
}

// Counts tallies the request's ratings per quality.
func (r ReportRequest) Counts() domain.PerformanceCounts {
	var c domain.PerformanceCounts
	for _, p := range r.Performance {
		c.Add(p.Quality)
	}
	return c
}

// ReportGenerator writes a natural-language summary of a study session.
type ReportGenerator interface {
	// GenerateReport returns the report text. Errors wrap the sentinels in
	// errors.go so callers can tell blocked content from transient failures.
	GenerateReport(ctx context.Context, req ReportRequest) (string, error)
}
