package api

import (
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
)

// CreateSetRequest is the body of POST /api/sets.
type CreateSetRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// CardRequest is the body for adding or editing a card.
type CardRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
	Answer   string `json:"answer"   validate:"required,max=4000"`
}

// ReviewRequest is the body of POST /api/cards/{id}/review. Quality accepts a
// rating name ("Good") or digit ("2").
type ReviewRequest struct {
	Quality *domain.Quality `json:"quality" validate:"required"`
}

// LogSessionRequest is the body of POST /api/sets/{id}/sessions.
type LogSessionRequest struct {
	CardsReviewed int                      `json:"cards_reviewed" validate:"gte=0"`
	Performance   domain.PerformanceCounts `json:"performance"`
	MasteryAtEnd  int                      `json:"mastery_at_end" validate:"gte=0,lte=100"`
}

// ReportRequest is the body of POST /api/sets/{id}/report.
type ReportRequest struct {
	Performance []generation.PerformanceEntry `json:"performance" validate:"required,min=1,max=500,dive"`
	GradeLevel  string                        `json:"grade_level" validate:"max=50"`
}

// ReportResponse carries the generated narrative.
type ReportResponse struct {
	Report string `json:"report"`
}
