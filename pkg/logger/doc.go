// Package logger provides structured logging with context extraction, a file sink,
// a critical level and Sentry integration.
//
// This package extends the standard library's log/slog with two key capabilities:
// automatic context-based attribute injection and optional Sentry error reporting.
// It is designed for production applications that need consistent, enriched logs
// with minimal boilerplate.
//
// # Overview
//
// The package provides:
//   - Context extractors that automatically inject request-scoped values (e.g., request IDs, stages)
//   - A decorator pattern that wraps any slog.Handler to add extraction behavior
//   - A JSON file sink and a critical level for bootstrap failures
//   - Sentry integration for error tracking with graceful fallback when unconfigured
//   - Multi-handler support for routing logs to multiple destinations
//
// # Basic Usage
//
// Create a logger with context extractors:
//
//	// Define an extractor for request ID
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if reqID, ok := ctx.Value("request_id").(string); ok && reqID != "" {
//			return slog.String("request_id", reqID), true
//		}
//		return slog.Attr{}, false
//	}
//
//	// Create logger with extractors
//	log := logger.New(requestIDExtractor)
//
//	// Use with context - request_id is automatically included
//	ctx := context.WithValue(context.Background(), "request_id", "abc-123")
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// Output: {"level":"INFO","msg":"request processed","status":200,"request_id":"abc-123"}
//
// # File Logging
//
// The console writes one JSON entry per line to the configured log file:
//
//	log, closeLog, err := logger.NewFile("/var/log/console/app.log",
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithSentry(logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")}),
//		logger.WithExtractors(requestIDExtractor),
//	)
//	defer closeLog()
//
// If the file cannot be opened the logger writes to stderr and err reports why.
//
// # Critical Entries
//
// LevelCritical sits above slog.LevelError and renders as "CRITICAL".
// Critical never panics, even with a nil logger:
//
//	logger.Critical(ctx, log, "bootstrap failed", slog.String("stage", "pool_ready"))
//
// With a Sentry DSN, error and critical entries create Sentry events; if the
// DSN is empty or the SDK fails to start, logging continues to the file only.
//
// # Context Extractors
//
// A ContextExtractor is a function that extracts a log attribute from context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors are called on every log call, ensuring fresh values for request-scoped data.
// Return false from the extractor to skip adding the attribute for that log entry.
//
// The console bootstrap installs one: the request id of the current run.
//
// # Context Handler
//
// ContextHandler wraps any slog.Handler to add context extraction:
//
//	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
//	log := slog.New(logger.NewContextHandler(h, extractors...))
//
// # Sinks
//
// NewFile writes JSON lines to the log file. When a Sentry DSN is configured,
// records are fanned out to the file and to Sentry; a Sentry failure never
// stops the file write. A missing DSN disables Sentry without error.
package logger
