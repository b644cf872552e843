package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/sethvargo/go-retry"
	"google.golang.org/genai"
)

// contentGenerator is the subset of genai.Models the generator calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

const systemInstruction = "You write encouraging, specific study feedback for school students. " +
	"Answer in plain text."

// ReportGenerator implements generation.ReportGenerator on top of Gemini.
type ReportGenerator struct {
	logger   *slog.Logger
	config   config.LLMConfig
	template *template.Template
	models   contentGenerator
}

var _ generation.ReportGenerator = (*ReportGenerator)(nil)

// NewReportGenerator validates cfg, loads the prompt template and connects a
// Gemini client.
func NewReportGenerator(ctx context.Context, l *slog.Logger, cfg config.LLMConfig) (*ReportGenerator, error) {
	if l == nil {
		return nil, errors.New("logger cannot be nil")
	}
	cfg, err := validateConfig(ctx, l, cfg)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newReportGenerator(l, cfg, client.Models)
}

func newReportGenerator(l *slog.Logger, cfg config.LLMConfig, models contentGenerator) (*ReportGenerator, error) {
	if models == nil {
		return nil, fmt.Errorf("%w: model client cannot be nil", generation.ErrInvalidConfig)
	}
	tmpl, err := loadTemplate(cfg.PromptTemplatePath)
	if err != nil {
		return nil, err
	}
	return &ReportGenerator{
		logger:   l.With(slog.String("component", "gemini_report_generator")),
		config:   cfg,
		template: tmpl,
		models:   models,
	}, nil
}

// GenerateReport renders the prompt for req and returns the model's text.
func (g *ReportGenerator) GenerateReport(ctx context.Context, req generation.ReportRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	prompt, err := renderPrompt(g.template, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}
	return g.callWithRetry(ctx, prompt)
}

func (g *ReportGenerator) backoff() retry.Backoff {
	base := time.Duration(g.config.RetryBaseDelayMS) * time.Millisecond
	if base <= 0 {
		base = defaultRetryBaseDelay * time.Millisecond
	}
	b := retry.NewExponential(base)
	b = retry.WithJitterPercent(20, b)
	return retry.WithMaxRetries(uint64(max(g.config.MaxRetries, 0)), b)
}

// callWithRetry retries transport failures with exponential backoff. Blocked
// and malformed responses are returned on the first attempt.
func (g *ReportGenerator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)
	temperature := float32(0.7)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		Temperature:       &temperature,
	}

	var (
		text    string
		attempt int
	)
	err := retry.Do(ctx, g.backoff(), func(ctx context.Context) error {
		attempt++
		log.DebugContext(ctx, "calling gemini",
			slog.Int("attempt", attempt),
			slog.String("model", g.config.ModelName),
			slog.Int("prompt_length", len(prompt)))

		resp, err := g.models.GenerateContent(ctx, g.config.ModelName, genai.Text(prompt), cfg)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.WarnContext(ctx, "gemini call failed",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
			return retry.RetryableError(fmt.Errorf("%w: %v", generation.ErrTransientFailure, err))
		}

		text, err = extractText(resp)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", generation.ErrTransientFailure, err)
		}
		log.ErrorContext(ctx, "report generation failed",
			slog.Int("attempts", attempt),
			slog.String("error", err.Error()))
		return "", err
	}

	log.InfoContext(ctx, "report generated",
		slog.Int("attempts", attempt),
		slog.Int("report_length", len(text)))
	return text, nil
}

// extractText joins the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrInvalidResponse)
	}

	c := resp.Candidates[0]
	if c.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked)
	}
	if c.Content == nil {
		return "", fmt.Errorf("%w: empty content", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range c.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("%w: empty text", generation.ErrInvalidResponse)
	}
	return text, nil
}
