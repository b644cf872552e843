// Command study is a terminal client for studying flashcard sets served by the
// study API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/client"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/events"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/study"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("study", pflag.ExitOnError)
	flags.String("base-url", "", "API base URL (default http://localhost:8080)")
	flags.String("token", "", "bearer token, see cmd/tokengen")
	flags.String("grade-level", "", "learner grade level used for report wording")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Int("timeout", 0, "request timeout in seconds")
	setID := flags.String("set", "", "open this set on start")
	_ = flags.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, flags, *setID); err != nil {
		fmt.Fprintf(os.Stderr, "study: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, flags *pflag.FlagSet, setID string) error {
	cfg, err := config.LoadClient(flags)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	l := logger.New(os.Stderr, level)

	api, err := client.New(*cfg, l)
	if err != nil {
		return err
	}

	term := newTerminal(os.Stdout, l)
	emitter := events.NewInMemoryEventEmitter(l)
	emitter.RegisterHandler(term)

	ctrl, err := study.NewController(study.Dependencies{
		Sets:     api,
		Due:      api,
		SRS:      api,
		Sessions: api,
		History:  api,
		Reports:  api,
		Cards:    api,
		Notifier: term,
	}, l, study.WithEmitter(emitter), study.WithGradeLevel(cfg.GradeLevel))
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if setID != "" {
		id, err := uuid.Parse(setID)
		if err != nil {
			return fmt.Errorf("invalid --set: %w", err)
		}
		if err := ctrl.Load(ctx, id); err != nil {
			l.Debug("initial load failed", slog.String("error", err.Error()))
		}
	}

	return newShell(ctrl, api, term, newLineInput(os.Stdin)).run(ctx)
}
