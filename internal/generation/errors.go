package generation

import "errors"

var (
	// ErrGenerationFailed is the generic failure of a report request.
	ErrGenerationFailed = errors.New("failed to generate session report")

	// ErrInvalidResponse is returned when the model answers without usable text.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when safety filters stop the response.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure marks errors worth retrying, such as rate limits.
	ErrTransientFailure = errors.New("transient error during report generation")

	// ErrInvalidConfig is returned for unusable generator settings.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPerformance is returned when a report is requested with no graded cards.
	ErrEmptyPerformance = errors.New("performance list cannot be empty")
)
