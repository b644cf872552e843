package gemini

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
)

//go:embed prompts/session_report.tmpl
var promptFS embed.FS

const defaultTemplateName = "prompts/session_report.tmpl"

// loadTemplate parses the template at path, or the embedded default when
// path is empty.
func loadTemplate(path string) (*template.Template, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = promptFS.ReadFile(defaultTemplateName)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template: %v", generation.ErrInvalidConfig, err)
	}

	tmpl, err := template.New("session_report").Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}
	return tmpl, nil
}

// renderPrompt executes tmpl for req.
func renderPrompt(tmpl *template.Template, req generation.ReportRequest) (string, error) {
	data := promptData{
		SetTitle:   req.SetTitle,
		GradeLevel: strings.TrimSpace(req.GradeLevel),
		Counts:     req.Counts(),
		Entries:    make([]promptEntry, 0, len(req.Performance)),
	}
	for _, p := range req.Performance {
		data.Entries = append(data.Entries, promptEntry{Question: p.Question, Rating: p.Quality.String()})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	prompt := strings.TrimSpace(buf.String())
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}
