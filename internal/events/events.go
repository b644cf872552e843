package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
)

// Type names a study-session event.
type Type string

const (
	SessionStarted   Type = "session.started"
	NothingDue       Type = "session.nothing_due"
	CardGraded       Type = "card.graded"
	SessionCompleted Type = "session.completed"
	QuizFinished     Type = "quiz.finished"
	ReportReady      Type = "report.ready"
	ReportFailed     Type = "report.failed"
)

// Event is one notification about a study session.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Type      Type            `json:"type"`
	SetID     uuid.UUID       `json:"set_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent builds an event for setID. A nil payload leaves Payload empty.
func NewEvent(eventType Type, setID uuid.UUID, payload any) (*Event, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		SetID:     setID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// SessionStartedPayload describes a freshly composed session.
type SessionStartedPayload struct {
	Mode  string `json:"mode"`
	Cards int    `json:"cards"`
}

// CardGradedPayload is emitted once the SRS update for a grade succeeded.
type CardGradedPayload struct {
	CardID            uuid.UUID      `json:"card_id"`
	Quality           domain.Quality `json:"quality"`
	Position          int            `json:"position"`
	Total             int            `json:"total"`
	MasteryPercentage int            `json:"mastery_percentage"`
}

// SessionCompletedPayload summarises a study session as soon as it ends.
type SessionCompletedPayload struct {
	CardsReviewed int                      `json:"cards_reviewed"`
	Counts        domain.PerformanceCounts `json:"counts"`
}

// QuizFinishedPayload carries the final quiz score.
type QuizFinishedPayload struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
}

// ReportPayload carries the narrative text or the reason it is missing.
type ReportPayload struct {
	Report string `json:"report,omitempty"`
	Error  string `json:"error,omitempty"`
}

// EventHandler processes events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter publishes events without knowing who handles them.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *Event) error
}
