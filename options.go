package console

import (
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/console/internal"
	"github.com/dmitrymomot/console/pkg/config"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/health"
	"github.com/dmitrymomot/console/pkg/logger"
	"github.com/dmitrymomot/console/pkg/metrics"
	"github.com/dmitrymomot/console/pkg/router"
	"github.com/dmitrymomot/console/pkg/view"
)

// WithConfig uses cfg instead of loading configuration. It is still validated.
func WithConfig(cfg *config.Config) Option {
	return internal.WithConfig(cfg)
}

// WithConfigLoader sets the function that loads configuration in the init stage.
func WithConfigLoader(fn func() (*config.Config, error)) Option {
	return internal.WithConfigLoader(fn)
}

// WithLogger sets the logger used until log.file.path is opened.
// If nil, the default no-op logger is kept.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithStderrLogger logs to stderr until the file logger takes over.
// Stdout is reserved for the body.
func WithStderrLogger(extractors ...logger.ContextExtractor) Option {
	log, _, _ := logger.NewFile("", logger.WithWriter(os.Stderr), logger.WithExtractors(extractors...))
	return internal.WithLogger(log)
}

// WithFileLoggerDisabled keeps the WithLogger logger for the whole run.
func WithFileLoggerDisabled() Option {
	return internal.WithFileLoggerDisabled()
}

// WithModules registers modules available for activation.
func WithModules(mods ...Module) Option {
	return internal.WithModules(mods...)
}

// WithDialer replaces the database connection factory.
func WithDialer(d db.Dialer) Option {
	return internal.WithDialer(d)
}

// WithRoutes uses rules instead of the app.routes file.
func WithRoutes(rules ...router.Rule) Option {
	return internal.WithRoutes(rules...)
}

// WithOutput sets where the body is written. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return internal.WithOutput(w)
}

// WithMethod sets the request method.
func WithMethod(method string) Option {
	return internal.WithMethod(method)
}

// WithMetrics records stage timings and outcomes.
func WithMetrics(r *metrics.Recorder) Option {
	return internal.WithMetrics(r)
}

// WithViews replaces the template registry.
func WithViews(r *view.Registry) Option {
	return internal.WithViews(r)
}

// WithHealthChecks adds checks reported by the system module.
func WithHealthChecks(checks health.Checks) Option {
	return internal.WithHealthChecks(checks)
}
