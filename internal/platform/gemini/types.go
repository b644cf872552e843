package gemini

import "github.com/joshuaking1/cognispark-ai-sub000/internal/domain"

// promptData is the value the report template is executed with.
type promptData struct {
	SetTitle   string
	GradeLevel string
	Counts     domain.PerformanceCounts
	Entries    []promptEntry
}

type promptEntry struct {
	Question string
	Rating   string
}
