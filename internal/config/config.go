package config

import "github.com/joshuaking1/cognispark-ai-sub000/internal/domain/srs"

// Config is the API server configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	SRS      srs.Overrides  `mapstructure:"srs"`
}

type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

type DatabaseConfig struct {
	// Driver selects the SQL backend: "postgres" (pgx) or "sqlite" (modernc).
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

type LLMConfig struct {
	GeminiAPIKey       string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName          string `mapstructure:"model_name" validate:"required"`
	MaxRetries         int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelayMS   int    `mapstructure:"retry_base_delay_ms" validate:"gte=0"`
	PromptTemplatePath string `mapstructure:"prompt_template_path"`
}

// ClientConfig configures the terminal study client.
type ClientConfig struct {
	BaseURL    string `mapstructure:"base_url" validate:"required,url"`
	Token      string `mapstructure:"token" validate:"required"`
	GradeLevel string `mapstructure:"grade_level"`
	LogLevel   string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	TimeoutSec int    `mapstructure:"timeout_sec" validate:"gte=0"`
}
