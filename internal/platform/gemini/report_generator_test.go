package gemini

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/domain"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels replays a fixed list of results, one per call.
type fakeModels struct {
	results []fakeResult
	calls   int
	prompts []string
}

type fakeResult struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	_ string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompts = append(f.prompts, contents[0].Parts[0].Text)
	}
	r := f.results[min(f.calls, len(f.results)-1)]
	f.calls++
	return r.resp, r.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey:     "test-key",
		ModelName:        "gemini-2.0-flash",
		MaxRetries:       2,
		RetryBaseDelayMS: 1,
	}
}

func sampleRequest() generation.ReportRequest {
	return generation.ReportRequest{
		SetTitle: "Photosynthesis",
		Performance: []generation.PerformanceEntry{
			{Question: "What gas do plants absorb?", Quality: domain.QualityGood},
			{Question: "Where does the light reaction happen?", Quality: domain.QualityAgain},
		},
		GradeLevel: "SHS 1",
	}
}

func newTestGenerator(t *testing.T, models contentGenerator) *ReportGenerator {
	t.Helper()
	g, err := newReportGenerator(logger.Discard(), testConfig(), models)
	require.NoError(t, err)
	return g
}

func TestGenerateReportSuccess(t *testing.T) {
	t.Parallel()

	models := &fakeModels{results: []fakeResult{{resp: textResponse("You did well ", "on gases.")}}}
	g := newTestGenerator(t, models)

	report, err := g.GenerateReport(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "You did well on gases.", report)

	require.Len(t, models.prompts, 1)
	prompt := models.prompts[0]
	assert.Contains(t, prompt, "Flashcard set: Photosynthesis")
	assert.Contains(t, prompt, "Student level: SHS 1")
	assert.Contains(t, prompt, `"What gas do plants absorb?" rated Good`)
	assert.Contains(t, prompt, `"Where does the light reaction happen?" rated Again`)
	assert.Contains(t, prompt, "Again 1, Hard 0, Good 1, Easy 0")
}

func TestGenerateReportOmitsUnknownGradeLevel(t *testing.T) {
	t.Parallel()

	models := &fakeModels{results: []fakeResult{{resp: textResponse("ok")}}}
	g := newTestGenerator(t, models)

	req := sampleRequest()
	req.GradeLevel = ""
	_, err := g.GenerateReport(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, models.prompts[0], "Student level")
}

func TestGenerateReportRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{results: []fakeResult{
		{err: errors.New("503 unavailable")},
		{resp: textResponse("second time lucky")},
	}}
	g := newTestGenerator(t, models)

	report, err := g.GenerateReport(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", report)
	assert.Equal(t, 2, models.calls)
}

func TestGenerateReportGivesUpAfterMaxRetries(t *testing.T) {
	t.Parallel()

	models := &fakeModels{results: []fakeResult{{err: errors.New("429 rate limited")}}}
	g := newTestGenerator(t, models)

	_, err := g.GenerateReport(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Equal(t, 3, models.calls)
}

func TestGenerateReportPermanentFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want error
	}{
		{
			name: "safety stop",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: "partial"}}},
				FinishReason: genai.FinishReasonSafety,
			}}},
			want: generation.ErrContentBlocked,
		},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety},
			},
			want: generation.ErrContentBlocked,
		},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: generation.ErrInvalidResponse},
		{
			name: "nil content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}},
			want: generation.ErrInvalidResponse,
		},
		{name: "blank text", resp: textResponse("  ", "\n"), want: generation.ErrInvalidResponse},
		{name: "nil response", resp: nil, want: generation.ErrInvalidResponse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			models := &fakeModels{results: []fakeResult{{resp: tc.resp}}}
			g := newTestGenerator(t, models)

			_, err := g.GenerateReport(context.Background(), sampleRequest())
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, models.calls, "permanent failures are not retried")
		})
	}
}

func TestGenerateReportRejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	models := &fakeModels{results: []fakeResult{{resp: textResponse("unused")}}}
	g := newTestGenerator(t, models)

	_, err := g.GenerateReport(context.Background(), generation.ReportRequest{SetTitle: "Empty"})
	assert.ErrorIs(t, err, generation.ErrEmptyPerformance)
	assert.Zero(t, models.calls)
}

func TestGenerateReportCancelledContext(t *testing.T) {
	t.Parallel()

	models := &fakeModels{results: []fakeResult{{err: context.Canceled}}}
	g := newTestGenerator(t, models)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateReport(ctx, sampleRequest())
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCustomPromptTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Report for {{.SetTitle}} ({{len .Entries}} cards)"), 0o600))

	cfg := testConfig()
	cfg.PromptTemplatePath = path
	models := &fakeModels{results: []fakeResult{{resp: textResponse("ok")}}}
	g, err := newReportGenerator(logger.Discard(), cfg, models)
	require.NoError(t, err)

	_, err = g.GenerateReport(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Report for Photosynthesis (2 cards)", models.prompts[0])
}

func TestTemplateErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.tmpl")
	require.NoError(t, os.WriteFile(broken, []byte("{{.SetTitle"), 0o600))

	_, err := loadTemplate(filepath.Join(dir, "missing.tmpl"))
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = loadTemplate(broken)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	tmpl, err := loadTemplate("")
	require.NoError(t, err)
	prompt, err := renderPrompt(tmpl, sampleRequest())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "You are a friendly study coach"))
}

func TestValidateConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := validateConfig(ctx, logger.Discard(), config.LLMConfig{ModelName: "m"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = validateConfig(ctx, logger.Discard(), config.LLMConfig{GeminiAPIKey: "k"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	cfg, err := validateConfig(ctx, logger.Discard(), config.LLMConfig{
		GeminiAPIKey: "k", ModelName: "m", MaxRetries: -1, RetryBaseDelayMS: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, defaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, defaultRetryBaseDelay, cfg.RetryBaseDelayMS)
}

func TestNewReportGeneratorRequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewReportGenerator(context.Background(), nil, testConfig())
	assert.Error(t, err)

	_, err = newReportGenerator(logger.Discard(), testConfig(), nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
