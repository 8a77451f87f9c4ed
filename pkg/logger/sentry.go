package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	// MinLevel determines which levels are stored as Sentry logs.
	// Critical entries always create events.
	MinLevel slog.Level `mapstructure:"-"`
}

// newSentryHandler returns nil when the DSN is empty or the SDK fails to start.
func newSentryHandler(cfg SentryConfig, fallback slog.Handler) slog.Handler {
	if cfg.DSN == "" {
		return nil
	}

	env := cfg.Environment
	if env == "" {
		env = "production"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: env,
		EnableLogs:  true,
	}); err != nil {
		slog.New(fallback).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return nil
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError, LevelCritical}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError, LevelCritical}
	}

	return sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError, LevelCritical},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())
}
