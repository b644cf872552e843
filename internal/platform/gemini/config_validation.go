package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/generation"
)

const (
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = 500
)

// validateConfig rejects unusable settings and fills retry defaults.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (config.LLMConfig, error) {
	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return cfg, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxRetries < 0 {
		logger.WarnContext(ctx, "invalid max retries, using default",
			slog.Int("value", cfg.MaxRetries),
			slog.Int("default", defaultMaxRetries))
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBaseDelayMS <= 0 {
		logger.WarnContext(ctx, "invalid retry delay, using default",
			slog.Int("value", cfg.RetryBaseDelayMS),
			slog.Int("default_ms", defaultRetryBaseDelay))
		cfg.RetryBaseDelayMS = defaultRetryBaseDelay
	}
	return cfg, nil
}
