package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
)

type options struct {
	writer     io.Writer
	sentry     SentryConfig
	extractors []ContextExtractor
	level      slog.Level
}

// Option configures a file logger.
type Option func(*options)

// WithLevel sets the minimum level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithSentry forwards errors and critical entries to Sentry when cfg.DSN is set.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) { o.sentry = cfg }
}

// WithExtractors adds context extractors.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

// WithWriter writes to w instead of opening a file.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// New creates a JSON-formatted stdout logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewContextHandler(jsonHandler(os.Stdout, slog.LevelInfo), extractors...))
}

// NewFile creates a JSON logger appending to path. The directory is created on
// demand; if the file cannot be opened, entries go to stderr and the error is
// returned alongside the working logger. The returned close function flushes
// Sentry and closes the file.
func NewFile(path string, opts ...Option) (*slog.Logger, func() error, error) {
	o := &options{level: slog.LevelInfo}
	for _, opt := range opts {
		opt(o)
	}

	var (
		w       = o.writer
		closers []func() error
		openErr error
	)
	if w == nil {
		f, err := openFile(path)
		if err != nil {
			w, openErr = os.Stderr, err
		} else {
			w = f
			closers = append(closers, f.Close)
		}
	}

	var handler slog.Handler = jsonHandler(w, o.level)
	if sh := newSentryHandler(o.sentry, handler); sh != nil {
		handler = fanout{handler, sh}
		closers = append(closers, func() error {
			sentry.Flush(2 * time.Second)
			return nil
		})
	}

	closeFn := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	return slog.New(NewContextHandler(handler, o.extractors...)), closeFn, openErr
}

func openFile(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.Join(ErrOpenLogFile, errors.New("empty path"))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Join(ErrOpenLogFile, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Join(ErrOpenLogFile, err)
	}
	return f, nil
}

func jsonHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})
}
