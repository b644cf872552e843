package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/client"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/study"
)

const helpText = `Commands:
  sets                        list your sets
  new <title>                 create a set
  open <set-id>               load a set
  browse | study | quiz       start a mode
  show                        show the current card
  flip | next | prev | shuffle
  again | hard | good | easy  rate the current card (study)
  right | wrong | finish      mark a quiz card, end the quiz
  exit                        end the study session early
  report                      show the latest session report
  add <question> | <answer>   add a card
  edit <question> | <answer>  replace the current card's text
  delete                      delete the current card
  help | quit`

// setCatalog lists and creates sets, which happens outside a loaded set.
type setCatalog interface {
	ListSets(ctx context.Context) ([]domain.FlashcardSet, error)
	CreateSet(ctx context.Context, title, description string) (*domain.FlashcardSet, error)
}

type shell struct {
	ctrl    *study.Controller
	catalog setCatalog
	term    *terminal
	input   study.AnswerInput
}

func newShell(ctrl *study.Controller, catalog setCatalog, term *terminal, input study.AnswerInput) *shell {
	return &shell{ctrl: ctrl, catalog: catalog, term: term, input: input}
}

// run reads commands until quit, EOF or ctx ends. The input is held only for
// the lifetime of the call.
func (s *shell) run(ctx context.Context) error {
	lines, err := s.input.Start(ctx)
	if err != nil {
		return fmt.Errorf("start input: %w", err)
	}
	defer func() { _ = s.input.Stop() }()

	s.term.printf("%s\n", helpText)
	s.term.renderCard(s.ctrl)
	for {
		s.term.printf("> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if s.exec(ctx, line) {
				return nil
			}
		}
	}
}

// exec runs one command line and reports whether the shell should stop.
func (s *shell) exec(ctx context.Context, line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	var err error
	render := true
	switch cmd {
	case "":
		return false
	case "quit", "q":
		return true
	case "help", "?":
		s.term.printf("%s\n", helpText)
		return false

	case "sets":
		err = s.listSets(ctx)
		render = false
	case "new":
		err = s.createSet(ctx, rest)
		render = false
	case "open":
		var id uuid.UUID
		if id, err = uuid.Parse(rest); err == nil {
			err = s.ctrl.Load(ctx, id)
		}

	case "browse", "study", "quiz":
		var mode study.Mode
		if mode, err = study.ParseMode(cmd); err == nil {
			err = s.ctrl.Compose(ctx, mode)
		}

	case "show":
	case "flip", "f":
		s.ctrl.Flip()
	case "next", "n":
		s.ctrl.Next()
	case "prev", "p":
		s.ctrl.Previous()
	case "shuffle":
		s.ctrl.Shuffle()

	case "again", "hard", "good", "easy", "0", "1", "2", "3":
		var q domain.Quality
		if q, err = domain.ParseQuality(cmd); err == nil {
			err = s.ctrl.Grade(ctx, q)
		}
	case "exit":
		err = s.ctrl.ExitStudy(ctx)

	case "right", "wrong":
		err = s.ctrl.Answer(cmd == "right")
	case "finish":
		_, err = s.ctrl.FinishQuiz(ctx)

	case "report":
		s.term.renderReport(s.ctrl.Report())
		render = false

	case "add":
		var in study.CardInput
		if in, err = parseCardInput(rest); err == nil {
			_, err = s.ctrl.AddCard(ctx, in)
		}
	case "edit":
		err = s.editCurrent(ctx, rest)
	case "delete":
		card, ok := s.ctrl.Current()
		if !ok {
			err = errors.New("no card selected")
			break
		}
		err = s.ctrl.DeleteCard(ctx, card.ID)

	default:
		s.term.printf("Unknown command %q. Type \"help\".\n", cmd)
		return false
	}

	if err != nil {
		s.explain(err)
	}
	if render {
		s.term.renderCard(s.ctrl)
	}
	return false
}

func (s *shell) listSets(ctx context.Context) error {
	sets, err := s.catalog.ListSets(ctx)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		s.term.printf("You have no sets yet. Create one with: new <title>\n")
		return nil
	}
	for _, set := range sets {
		s.term.printf("  %s  %s\n", set.ID, set.Title)
	}
	return nil
}

func (s *shell) createSet(ctx context.Context, title string) error {
	if title == "" {
		return errors.New("usage: new <title>")
	}
	set, err := s.catalog.CreateSet(ctx, title, "")
	if err != nil {
		return err
	}
	s.term.printf("Created %q (%s)\n", set.Title, set.ID)
	return nil
}

func (s *shell) editCurrent(ctx context.Context, rest string) error {
	in, err := parseCardInput(rest)
	if err != nil {
		return err
	}
	card, ok := s.ctrl.Current()
	if !ok {
		return errors.New("no card selected")
	}
	if err := s.ctrl.BeginEdit(card.ID); err != nil {
		return err
	}
	if _, err := s.ctrl.SaveEdit(ctx, in); err != nil {
		_ = s.ctrl.CancelEdit()
		return err
	}
	return nil
}

// explain prints a short hint for errors the learner can act on. Collaborator
// failures were already reported by the notifier.
func (s *shell) explain(err error) {
	switch {
	case errors.Is(err, study.ErrNothingDue):
	case errors.Is(err, study.ErrGradeNotAllowed):
		s.term.printf("Flip the card before rating it.\n")
	case errors.Is(err, study.ErrAnswerNotAllowed):
		s.term.printf("Flip the card before marking it.\n")
	case errors.Is(err, study.ErrBusy):
		s.term.printf("Still saving, try again in a moment.\n")
	case errors.Is(err, study.ErrEmptySet):
		s.term.printf("This set has no cards yet.\n")
	case errors.Is(err, study.ErrNotLoaded):
		s.term.printf("Open a set first.\n")
	case errors.Is(err, study.ErrInvalidTransition):
		s.term.printf("Not available right now (%v).\n", err)
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidQuality):
		s.term.printf("%v\n", err)
	default:
		s.term.logger.Debug("command failed", slog.String("error", err.Error()))
		if !isCollaboratorError(err) {
			s.term.printf("%v\n", err)
		}
	}
}

// isCollaboratorError reports whether err came back from the API and was
// therefore already shown by the notifier.
func isCollaboratorError(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr)
}

// parseCardInput splits "question | answer".
func parseCardInput(s string) (study.CardInput, error) {
	q, a, ok := strings.Cut(s, "|")
	if !ok {
		return study.CardInput{}, errors.New("usage: <question> | <answer>")
	}
	in := study.CardInput{Question: q, Answer: a}
	if err := in.Validate(); err != nil {
		return study.CardInput{}, err
	}
	return in, nil
}
