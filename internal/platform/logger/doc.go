// Package logger configures the process-wide slog logger and carries
// request-scoped loggers through contexts.
package logger
