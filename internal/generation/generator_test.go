package generation

import (
	"testing"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestReportRequestValidate(t *testing.T) {
	t.Parallel()
	entries := []PerformanceEntry{{Question: "q1", Quality: domain.QualityGood}}

	assert.NoError(t, ReportRequest{SetTitle: "Biology", Performance: entries}.Validate())
	assert.ErrorIs(t, ReportRequest{Performance: entries}.Validate(), domain.ErrEmptyContent)
	assert.ErrorIs(t, ReportRequest{SetTitle: "Biology"}.Validate(), ErrEmptyPerformance)
	assert.ErrorIs(t, ReportRequest{
		SetTitle:    "Biology",
		Performance: []PerformanceEntry{{Question: "q", Quality: 7}},
	}.Validate(), domain.ErrInvalidQuality)
}

func TestReportRequestCounts(t *testing.T) {
	t.Parallel()
	req := ReportRequest{Performance: []PerformanceEntry{
		{Quality: domain.QualityAgain},
		{Quality: domain.QualityGood},
		{Quality: domain.QualityGood},
		{Quality: domain.QualityEasy},
	}}

	assert.Equal(t, domain.PerformanceCounts{Again: 1, Good: 2, Easy: 1}, req.Counts())
}
