package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/api"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/study"
)

var (
	_ study.SetFetcher      = (*Client)(nil)
	_ study.DueFetcher      = (*Client)(nil)
	_ study.SRSUpdater      = (*Client)(nil)
	_ study.SessionLogger   = (*Client)(nil)
	_ study.HistoryFetcher  = (*Client)(nil)
	_ study.ReportGenerator = (*Client)(nil)
	_ study.CardEditor      = (*Client)(nil)
)

// Health reports whether the server answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ListSets returns the caller's flashcard sets.
func (c *Client) ListSets(ctx context.Context) ([]domain.FlashcardSet, error) {
	var sets []domain.FlashcardSet
	if err := c.do(ctx, http.MethodGet, "/api/sets", nil, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// CreateSet creates an empty set.
func (c *Client) CreateSet(ctx context.Context, title, description string) (*domain.FlashcardSet, error) {
	var set domain.FlashcardSet
	req := api.CreateSetRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/sets", req, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

func (c *Client) FetchSetDetails(ctx context.Context, setID uuid.UUID) (*domain.SetDetails, error) {
	var details domain.SetDetails
	if err := c.do(ctx, http.MethodGet, setPath(setID, ""), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *Client) FetchDueCards(ctx context.Context, setID uuid.UUID) ([]domain.Flashcard, error) {
	var cards []domain.Flashcard
	if err := c.do(ctx, http.MethodGet, setPath(setID, "/due"), nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) UpdateSRS(ctx context.Context, cardID uuid.UUID, quality domain.Quality) (*domain.Flashcard, error) {
	var card domain.Flashcard
	req := api.ReviewRequest{Quality: &quality}
	if err := c.do(ctx, http.MethodPost, cardPath(cardID, "/review"), req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) LogSession(ctx context.Context, summary study.SessionSummary) error {
	req := api.LogSessionRequest{
		CardsReviewed: summary.CardsReviewed,
		Performance:   summary.Performance,
		MasteryAtEnd:  summary.MasteryAtEnd,
	}
	return c.do(ctx, http.MethodPost, setPath(summary.SetID, "/sessions"), req, nil)
}

func (c *Client) FetchHistory(ctx context.Context, setID uuid.UUID) ([]domain.SessionLog, error) {
	var logs []domain.SessionLog
	if err := c.do(ctx, http.MethodGet, setPath(setID, "/sessions"), nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// GenerateReport asks the server for a narrative report. The server looks up
// the set title itself.
func (c *Client) GenerateReport(ctx context.Context, in study.ReportInput) (string, error) {
	var resp api.ReportResponse
	req := api.ReportRequest{Performance: in.Performance, GradeLevel: in.GradeLevel}
	if err := c.do(ctx, http.MethodPost, setPath(in.SetID, "/report"), req, &resp); err != nil {
		return "", err
	}
	return resp.Report, nil
}

func (c *Client) AddCard(ctx context.Context, setID uuid.UUID, in study.CardInput) (*domain.Flashcard, error) {
	var card domain.Flashcard
	req := api.CardRequest{Question: in.Question, Answer: in.Answer}
	if err := c.do(ctx, http.MethodPost, setPath(setID, "/cards"), req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) EditCard(ctx context.Context, cardID uuid.UUID, in study.CardInput) (*domain.Flashcard, error) {
	var card domain.Flashcard
	req := api.CardRequest{Question: in.Question, Answer: in.Answer}
	if err := c.do(ctx, http.MethodPut, cardPath(cardID, ""), req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, cardPath(cardID, ""), nil, nil)
}

func setPath(id uuid.UUID, suffix string) string {
	return "/api/sets/" + id.String() + suffix
}

func cardPath(id uuid.UUID, suffix string) string {
	return "/api/cards/" + id.String() + suffix
}
