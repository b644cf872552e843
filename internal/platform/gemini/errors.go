package gemini

import "errors"

var (
	// ErrEmptyPrompt is returned when a rendered prompt has no content.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
