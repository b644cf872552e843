package study

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(qs ...domain.Quality) []PerformanceRecord {
	out := make([]PerformanceRecord, len(qs))
	for i, q := range qs {
		out[i] = PerformanceRecord{CardID: uuid.New(), Question: q.String() + " card", Quality: q}
	}
	return out
}

func TestTallyRecordsSkipsEmptyBuckets(t *testing.T) {
	t.Parallel()
	recs := records(domain.QualityAgain, domain.QualityGood, domain.QualityGood, domain.QualityEasy)

	tally := TallyRecords(recs)

	assert.Equal(t, domain.PerformanceCounts{Again: 1, Good: 2, Easy: 1}, tally.Counts)
	require.Len(t, tally.Chart, 3)
	assert.Equal(t, "Again", tally.Chart[0].Name)
	assert.Equal(t, 1, tally.Chart[0].Count)
	assert.Equal(t, "Good", tally.Chart[1].Name)
	assert.Equal(t, 2, tally.Chart[1].Count)
	assert.Equal(t, "Easy", tally.Chart[2].Name)
	assert.Equal(t, 1, tally.Chart[2].Count)
	for _, e := range tally.Chart {
		assert.NotEmpty(t, e.Color)
		assert.NotEqual(t, domain.QualityHard, e.Quality)
	}

	challenging := Challenging(recs)
	require.Len(t, challenging, 1)
	assert.Equal(t, recs[0].CardID, challenging[0].CardID)
	assert.Equal(t, "Forgot", challenging[0].Label)
}

func TestTallyRecordsOrdersByFirstAppearance(t *testing.T) {
	t.Parallel()
	tally := TallyRecords(records(domain.QualityEasy, domain.QualityHard, domain.QualityEasy))

	require.Len(t, tally.Chart, 2)
	assert.Equal(t, domain.QualityEasy, tally.Chart[0].Quality)
	assert.Equal(t, 2, tally.Chart[0].Count)
	assert.Equal(t, domain.QualityHard, tally.Chart[1].Quality)
	assert.Empty(t, TallyRecords(nil).Chart)
}

func TestChallengingKeepsFirstFive(t *testing.T) {
	t.Parallel()
	recs := records(
		domain.QualityHard, domain.QualityGood, domain.QualityAgain, domain.QualityHard,
		domain.QualityEasy, domain.QualityAgain, domain.QualityHard, domain.QualityAgain,
	)

	got := Challenging(recs)

	require.Len(t, got, MaxChallenging)
	want := []uuid.UUID{recs[0].CardID, recs[2].CardID, recs[3].CardID, recs[5].CardID, recs[6].CardID}
	for i, c := range got {
		assert.Equal(t, want[i], c.CardID)
	}
	assert.Equal(t, "Struggled", got[0].Label)
}

func TestTrend(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []domain.SessionLog{
		{CardsReviewed: 4, Performance: domain.PerformanceCounts{Again: 1, Good: 2, Easy: 1}, MasteryAtEnd: 25, CompletedAt: day},
		{CardsReviewed: 3, Performance: domain.PerformanceCounts{Hard: 2, Good: 1}, MasteryAtEnd: 40, CompletedAt: day.AddDate(0, 0, 1)},
	}

	points := Trend(history)

	require.Len(t, points, 2)
	assert.Equal(t, TrendPoint{Date: day, OverallMasteryPercent: 25, GoodOrEasyPercent: 75}, points[0])
	assert.Equal(t, 33, points[1].GoodOrEasyPercent)
}

func TestTrendWithNothingReviewedDividesByOne(t *testing.T) {
	t.Parallel()
	points := Trend([]domain.SessionLog{
		{CardsReviewed: 0, Performance: domain.PerformanceCounts{}, MasteryAtEnd: 10},
		{CardsReviewed: 0, Performance: domain.PerformanceCounts{Good: 1}},
	})

	require.Len(t, points, 2)
	assert.Equal(t, 0, points[0].GoodOrEasyPercent)
	assert.Equal(t, 100, points[1].GoodOrEasyPercent)
	assert.NotNil(t, Trend(nil))
}
