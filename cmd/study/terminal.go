package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/study"
)

// terminal prints notifications and session events. Report events arrive
// from background goroutines, so every write takes mu.
type terminal struct {
	mu     sync.Mutex
	out    io.Writer
	logger *slog.Logger
}

var (
	_ study.Notifier      = (*terminal)(nil)
	_ events.EventHandler = (*terminal)(nil)
)

func newTerminal(out io.Writer, l *slog.Logger) *terminal {
	if l == nil {
		l = slog.Default()
	}
	return &terminal{out: out, logger: l.With(slog.String("component", "terminal"))}
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) Info(msg string) {
	t.printf("* %s\n", msg)
}

func (t *terminal) Error(msg string, err error) {
	if err != nil {
		t.logger.Debug(msg, slog.String("error", err.Error()))
	}
	t.printf("! %s\n", msg)
}

func (t *terminal) HandleEvent(_ context.Context, event *events.Event) error {
	switch event.Type {
	case events.SessionStarted:
		var p events.SessionStartedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		t.printf("* %s session started with %d cards\n", p.Mode, p.Cards)

	case events.CardGraded:
		var p events.CardGradedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		t.printf("* rated %s (%d/%d), set mastery %d%%\n", p.Quality, p.Position, p.Total, p.MasteryPercentage)

	case events.SessionCompleted:
		var p events.SessionCompletedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		t.printf("* session complete: %d cards (again %d, hard %d, good %d, easy %d)\n",
			p.CardsReviewed, p.Counts.Again, p.Counts.Hard, p.Counts.Good, p.Counts.Easy)
		t.printf("* writing your report, type \"report\" to view it\n")

	case events.QuizFinished:
		var p events.QuizFinishedPayload
		if err := event.UnmarshalPayload(&p); err != nil {
			return err
		}
		t.printf("* quiz finished: %d correct, %d incorrect, %d unanswered\n", p.Correct, p.Incorrect, p.Unanswered)

	case events.ReportReady:
		t.printf("* your session report is ready\n")

	case events.NothingDue, events.ReportFailed:
		// The notifier already told the learner.
	}
	return nil
}

// renderCard prints the current position of the controller.
func (t *terminal) renderCard(ctrl *study.Controller) {
	state := ctrl.State()
	switch state {
	case study.StateIdle:
		t.printf("No set open. Type \"sets\" to list them or \"open <id>\".\n")
		return
	case study.StateEmptySet:
		t.printf("%q has no cards yet. Add one with: add <question> | <answer>\n", ctrl.Set().Title)
		return
	case study.StateEditing:
		if card, ok := ctrl.Editing(); ok {
			t.printf("Editing: %s\n", card.Question)
		}
		return
	}

	card, ok := ctrl.Current()
	if !ok {
		return
	}
	total := len(ctrl.Cards())
	header := fmt.Sprintf("[%s %d/%d]", state, ctrl.Index()+1, total)
	switch state {
	case study.StateStudying:
		header = fmt.Sprintf("[study %d/%d %.0f%%]", ctrl.Index()+1, total, ctrl.Progress())
	case study.StateQuizzing:
		score := ctrl.Score()
		header = fmt.Sprintf("[quiz %d/%d, %d correct]", ctrl.Index()+1, total, score.Correct)
	case study.StateBrowsing:
		header = fmt.Sprintf("[browse %d/%d, mastery %d%%]", ctrl.Index()+1, total, ctrl.Mastery())
	}

	t.printf("%s Q: %s\n", header, card.Question)
	if ctrl.ShowingAnswer() {
		t.printf("%s A: %s\n", strings.Repeat(" ", len(header)), card.Answer)
	}
}

// renderReport prints whatever parts of report have settled.
func (t *terminal) renderReport(report *study.SessionReport) {
	if report == nil {
		t.printf("No study session has finished yet.\n")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Session report for %q: %d cards reviewed\n", report.SetTitle, report.CardsReviewed)
	for _, entry := range report.Tally.Chart {
		fmt.Fprintf(&b, "  %-6s %s %d\n", entry.Name, strings.Repeat("#", entry.Count), entry.Count)
	}
	if len(report.Challenging) > 0 {
		b.WriteString("Cards to revisit:\n")
		for _, c := range report.Challenging {
			fmt.Fprintf(&b, "  [%s] %s\n", c.Label, c.Question)
		}
	}

	select {
	case <-report.Done():
	default:
		b.WriteString("Still writing the rest of the report...\n")
		t.printf("%s", b.String())
		return
	}

	fmt.Fprintf(&b, "Mastery now: %d%%\n", report.MasteryAtEnd())
	if trend, err := report.Trend(); err == nil && len(trend) > 0 {
		b.WriteString("History:\n")
		for _, p := range trend {
			fmt.Fprintf(&b, "  %s  mastery %3d%%  good/easy %3d%%\n",
				p.Date.Local().Format("2006-01-02 15:04"), p.OverallMasteryPercent, p.GoodOrEasyPercent)
		}
	}
	if text, err := report.Narrative(); err == nil {
		b.WriteString("\n" + text + "\n")
	} else {
		b.WriteString("The written summary is unavailable.\n")
	}
	t.printf("%s", b.String())
}
