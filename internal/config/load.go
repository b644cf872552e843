package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. COGNISPARK_SERVER_PORT.
const EnvPrefix = "COGNISPARK"

var serverDefaults = map[string]any{
	"server.port":                 8080,
	"server.log_level":            "info",
	"database.driver":             "postgres",
	"database.url":                "",
	"database.max_open_conns":     10,
	"database.auto_migrate":       false,
	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 60,
	"llm.gemini_api_key":          "",
	"llm.model_name":              "gemini-2.0-flash",
	"llm.max_retries":             3,
	"llm.retry_base_delay_ms":     500,
	"llm.prompt_template_path":    "",
	"srs.initial_ease_factor":     0.0,
	"srs.min_ease_factor":         0.0,
	"srs.max_ease_factor":         0.0,
	"srs.hard_interval_modifier":  0.0,
	"srs.easy_interval_modifier":  0.0,
	"srs.first_easy_interval":     0,
	"srs.again_review_minutes":    0,
}

var clientDefaults = map[string]any{
	"base_url":    "http://localhost:8080",
	"token":       "",
	"grade_level": "",
	"log_level":   "warn",
	"timeout_sec": 30,
}

func newViper(name string, defaults map[string]any) *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func readOptionalFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Load reads the server configuration from defaults, an optional config.yaml
// in the working directory and COGNISPARK_* environment variables, in
// increasing precedence, and validates the result.
func Load() (*Config, error) {
	v := newViper("config", serverDefaults)
	if err := readOptionalFile(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ClientFlags maps command-line flag names onto client config keys.
var ClientFlags = map[string]string{
	"base-url":    "base_url",
	"token":       "token",
	"grade-level": "grade_level",
	"log-level":   "log_level",
	"timeout":     "timeout_sec",
}

// LoadClient reads the study client configuration from defaults, an optional
// study.yaml, COGNISPARK_* variables (COGNISPARK_BASE_URL, COGNISPARK_TOKEN, ...)
// and finally any flag in ClientFlags that was set on the command line.
func LoadClient(flags *pflag.FlagSet) (*ClientConfig, error) {
	v := newViper("study", clientDefaults)
	if flags != nil {
		for name, key := range ClientFlags {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	if err := readOptionalFile(v); err != nil {
		return nil, err
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal client config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("client config validation failed: %w", err)
	}
	return &cfg, nil
}
