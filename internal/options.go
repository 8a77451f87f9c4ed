package internal

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/console/pkg/config"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/health"
	"github.com/dmitrymomot/console/pkg/metrics"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/router"
	"github.com/dmitrymomot/console/pkg/view"
)

// Option configures the application.
type Option func(*App)

// WithConfig uses cfg instead of loading one. It is still validated.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
}

// WithConfigLoader sets the function that loads configuration during the
// init stage. Its errors become *ConfigError.
//
// Example:
//
//	console.New(
//	    console.WithConfigLoader(func() (*config.Config, error) {
//	        return config.Load(config.WithFile("configs/console.yaml"))
//	    }),
//	)
func WithConfigLoader(fn func() (*config.Config, error)) Option {
	return func(a *App) {
		if fn != nil {
			a.loadConfig = fn
		}
	}
}

// WithLogger sets the logger used before configuration is loaded.
// With WithFileLoggerDisabled it is also used for the rest of the run.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.logger = log
		}
	}
}

// WithFileLoggerDisabled keeps the WithLogger logger instead of opening
// log.file.path.
func WithFileLoggerDisabled() Option {
	return func(a *App) {
		a.noFileLogger = true
	}
}

// WithModules registers modules available for activation.
// Only modules active in the manifest are initialized.
func WithModules(mods ...module.Module) Option {
	return func(a *App) {
		a.modules = append(a.modules, mods...)
	}
}

// WithDialer replaces the database connection factory.
func WithDialer(d db.Dialer) Option {
	return func(a *App) {
		a.dialer = d
	}
}

// WithRoutes uses rules instead of the app.routes file.
func WithRoutes(rules ...router.Rule) Option {
	return func(a *App) {
		a.rules = append(a.rules, rules...)
	}
}

// WithOutput sets where the body is written. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.output = w
		}
	}
}

// WithMethod sets the request method. Default: app.method from config.
func WithMethod(method string) Option {
	return func(a *App) {
		a.method = method
	}
}

// WithMetrics records stage timings and outcomes. Without it a recorder is
// created when metrics.file is configured.
func WithMetrics(r *metrics.Recorder) Option {
	return func(a *App) {
		a.metrics = r
	}
}

// WithViews replaces the template registry.
func WithViews(r *view.Registry) Option {
	return func(a *App) {
		a.views = r
	}
}

// WithHealthChecks adds checks next to the per-role database checks.
func WithHealthChecks(checks health.Checks) Option {
	return func(a *App) {
		if a.checks == nil {
			a.checks = make(health.Checks, len(checks))
		}
		for name, fn := range checks {
			a.checks[name] = fn
		}
	}
}
