package study

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"golang.org/x/sync/errgroup"
)

// MaxChallenging caps the challenging-card list of a report.
const MaxChallenging = 5

var qualityColors = map[domain.Quality]string{
	domain.QualityAgain: "#ef4444",
	domain.QualityHard:  "#f97316",
	domain.QualityGood:  "#22c55e",
	domain.QualityEasy:  "#3b82f6",
}

// ChartEntry is one non-empty bar of the rating distribution.
type ChartEntry struct {
	Name    string
	Quality domain.Quality
	Count   int
	Color   string
}

// Tally is the rating distribution of a session.
type Tally struct {
	Counts domain.PerformanceCounts
	// Chart holds only non-zero buckets, in order of first appearance.
	Chart []ChartEntry
}

// TallyRecords counts records per quality.
func TallyRecords(records []PerformanceRecord) Tally {
	var t Tally
	pos := make(map[domain.Quality]int, len(domain.Qualities))
	for _, r := range records {
		if !r.Quality.Valid() {
			continue
		}
		t.Counts.Add(r.Quality)
		if i, ok := pos[r.Quality]; ok {
			t.Chart[i].Count++
			continue
		}
		pos[r.Quality] = len(t.Chart)
		t.Chart = append(t.Chart, ChartEntry{
			Name:    r.Quality.String(),
			Quality: r.Quality,
			Count:   1,
			Color:   qualityColors[r.Quality],
		})
	}
	return t
}

// ChallengingCard is a card rated Again or Hard.
type ChallengingCard struct {
	CardID   uuid.UUID
	Question string
	Quality  domain.Quality
	Label    string
}

// Challenging returns up to MaxChallenging records rated Again or Hard, in
// the order they were graded.
func Challenging(records []PerformanceRecord) []ChallengingCard {
	var out []ChallengingCard
	for _, r := range records {
		if !r.Quality.Struggled() {
			continue
		}
		label := "Struggled"
		if r.Quality == domain.QualityAgain {
			label = "Forgot"
		}
		out = append(out, ChallengingCard{
			CardID:   r.CardID,
			Question: r.Question,
			Quality:  r.Quality,
			Label:    label,
		})
		if len(out) == MaxChallenging {
			break
		}
	}
	return out
}

// TrendPoint is one past session reshaped for charting.
type TrendPoint struct {
	Date                  time.Time
	OverallMasteryPercent int
	GoodOrEasyPercent     int
}

// Trend reshapes session history. A session with no reviewed cards divides by
// one.
func Trend(history []domain.SessionLog) []TrendPoint {
	points := make([]TrendPoint, 0, len(history))
	for _, h := range history {
		reviewed := max(h.CardsReviewed, 1)
		points = append(points, TrendPoint{
			Date:                  h.CompletedAt,
			OverallMasteryPercent: h.MasteryAtEnd,
			GoodOrEasyPercent:     domain.Percent(h.Performance.Good+h.Performance.Easy, reviewed),
		})
	}
	return points
}

// SessionReport is the result of one finished study session. The tally and
// challenging cards are ready immediately; mastery at end, trend and the
// narrative arrive once Done is closed.
type SessionReport struct {
	SetID         uuid.UUID
	SetTitle      string
	CardsReviewed int
	Records       []PerformanceRecord
	Tally         Tally
	Challenging   []ChallengingCard
	CompletedAt   time.Time

	generation uint64
	cardSeq    uint64
	done       chan struct{}

	mu           sync.RWMutex
	masteryAtEnd int
	logErr       error
	trend        []TrendPoint
	historyErr   error
	narrative    string
	narrativeErr error
}

func newSessionReport(set domain.FlashcardSet, records []PerformanceRecord, now time.Time, gen uint64) *SessionReport {
	return &SessionReport{
		SetID:         set.ID,
		SetTitle:      set.Title,
		CardsReviewed: len(records),
		Records:       records,
		Tally:         TallyRecords(records),
		Challenging:   Challenging(records),
		CompletedAt:   now.UTC(),
		generation:    gen,
		done:          make(chan struct{}),
	}
}

// Done is closed when the background steps have settled.
func (r *SessionReport) Done() <-chan struct{} {
	return r.done
}

// MasteryAtEnd is the set's mastery percentage after the session.
func (r *SessionReport) MasteryAtEnd() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.masteryAtEnd
}

// LogErr is the error from persisting the session, if any.
func (r *SessionReport) LogErr() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logErr
}

// Trend returns the history chart, or the error that prevented it.
func (r *SessionReport) Trend() ([]TrendPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.trend), r.historyErr
}

// Narrative returns the generated report text, or the error that prevented it.
func (r *SessionReport) Narrative() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.narrative, r.narrativeErr
}

// finishStudyLocked ends the running study session: it snapshots the records
// into a new report, returns the controller to browsing and starts the
// background steps. c.mu must be held.
func (c *Controller) finishStudyLocked(ctx context.Context) *SessionReport {
	_ = c.setStateLocked(StateReportBuilding)

	c.reportGen++
	report := newSessionReport(c.set, c.records, c.now(), c.reportGen)
	report.cardSeq = c.cardSeq
	c.report = report
	localCards := slices.Clone(c.cards)

	c.records = nil
	c.resetBrowseLocked()
	_ = c.setStateLocked(StateBrowsing)

	go c.buildReport(context.WithoutCancel(ctx), report, localCards)
	return report
}

func (c *Controller) buildReport(ctx context.Context, report *SessionReport, localCards []domain.Flashcard) {
	defer close(report.done)
	log := logger.FromContextOrDefault(ctx, c.logger).With(slog.String("set_id", report.SetID.String()))

	var g errgroup.Group
	g.Go(func() error { return c.logSession(ctx, log, report, localCards) })
	g.Go(func() error { return c.fetchTrend(ctx, log, report) })
	g.Go(func() error { return c.writeNarrative(ctx, log, report) })

	if err := g.Wait(); err != nil {
		log.Debug("session report finished with errors", slog.String("error", err.Error()))
	}
}

// current reports whether results for report may still be applied.
func (c *Controller) current(report *SessionReport) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.reportGen == report.generation
}

func (c *Controller) logSession(ctx context.Context, log *slog.Logger, report *SessionReport, localCards []domain.Flashcard) error {
	mastery := domain.MasteryPercentage(localCards)
	details, err := c.deps.Sets.FetchSetDetails(ctx, report.SetID)
	if err != nil || details == nil {
		log.Warn("could not refresh set for mastery, using local cards")
	} else {
		mastery = domain.MasteryPercentage(details.Cards)
		c.refreshCards(report, details.Cards)
	}

	summary := SessionSummary{
		SetID:         report.SetID,
		CardsReviewed: report.CardsReviewed,
		Performance:   report.Tally.Counts,
		MasteryAtEnd:  mastery,
	}
	logErr := c.deps.Sessions.LogSession(ctx, summary)
	if logErr != nil {
		log.Error("failed to log study session", slog.String("error", logErr.Error()))
		logErr = fmt.Errorf("log session: %w", logErr)
	}

	if c.current(report) {
		report.mu.Lock()
		report.masteryAtEnd = mastery
		report.logErr = logErr
		report.mu.Unlock()
	}
	return logErr
}

// refreshCards applies server-side SRS state to the loaded cards while the
// report is still current. Cards graded or edited after the report started,
// and everything after a reload, keep their newer local copy.
func (c *Controller) refreshCards(report *SessionReport, fresh []domain.Flashcard) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.reportGen != report.generation || c.loadSeq > report.cardSeq {
		return
	}
	for _, card := range fresh {
		if c.touched[card.ID] > report.cardSeq {
			continue
		}
		if _, ok := c.findCardLocked(card.ID); ok {
			c.replaceCardLocked(card)
		}
	}
}

func (c *Controller) fetchTrend(ctx context.Context, log *slog.Logger, report *SessionReport) error {
	history, err := c.deps.History.FetchHistory(ctx, report.SetID)
	if err != nil {
		err = fmt.Errorf("fetch history: %w", err)
		log.Error("failed to fetch study history", slog.String("error", err.Error()))
	}
	if !c.current(report) {
		return err
	}

	report.mu.Lock()
	if err != nil {
		report.historyErr = err
	} else {
		report.trend = Trend(history)
	}
	report.mu.Unlock()

	if err != nil {
		c.deps.Notifier.Error("Could not load your study history", err)
	}
	return err
}

func (c *Controller) writeNarrative(ctx context.Context, log *slog.Logger, report *SessionReport) error {
	performance := make([]generation.PerformanceEntry, 0, len(report.Records))
	for _, r := range report.Records {
		performance = append(performance, generation.PerformanceEntry{Question: r.Question, Quality: r.Quality})
	}

	text, err := c.deps.Reports.GenerateReport(ctx, ReportInput{
		SetID:       report.SetID,
		SetTitle:    report.SetTitle,
		Performance: performance,
		GradeLevel:  c.gradeLevel,
	})
	if err != nil {
		err = fmt.Errorf("generate report: %w", err)
		log.Error("failed to generate session report", slog.String("error", err.Error()))
	}
	if !c.current(report) {
		return err
	}

	report.mu.Lock()
	if err != nil {
		report.narrativeErr = err
	} else {
		report.narrative = text
	}
	report.mu.Unlock()

	if err != nil {
		c.deps.Notifier.Error("Could not generate the session report", err)
		c.emit(ctx, events.ReportFailed, report.SetID, events.ReportPayload{Error: err.Error()})
		return err
	}
	c.emit(ctx, events.ReportReady, report.SetID, events.ReportPayload{Report: text})
	return nil
}
