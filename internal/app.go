package internal

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/console/pkg/config"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/health"
	"github.com/dmitrymomot/console/pkg/logger"
	"github.com/dmitrymomot/console/pkg/metrics"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/router"
	"github.com/dmitrymomot/console/pkg/view"
)

// App bootstraps console requests. It is immutable after New; every Run is
// an independent invocation with its own pool, router and modules.
type App struct {
	loadConfig   func() (*config.Config, error)
	logger       *slog.Logger
	output       io.Writer
	dialer       db.Dialer
	metrics      *metrics.Recorder
	views        *view.Registry
	checks       health.Checks
	method       string
	modules      []module.Module
	rules        []router.Rule
	noFileLogger bool
}

// New creates an application with the given options.
//
// Example:
//
//	app := console.New(
//	    console.WithModules(dashboard.New(), system.New()),
//	)
//	out := app.Run(ctx, os.Args[1:])
//	os.Exit(out.ExitCode)
func New(opts ...Option) *App {
	a := &App{
		logger: logger.NewNope(),
		output: os.Stdout,
		loadConfig: func() (*config.Config, error) {
			return config.Load(config.WithSearchPath(".", "configs"))
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run bootstraps one request from args and writes its body exactly once.
// It never panics: every failure, including panics in modules, is rendered
// into the body and reported in the returned Outcome.
func (a *App) Run(ctx context.Context, args []string) (out Outcome) {
	r := &run{app: a, args: args, log: a.logger, metrics: a.metrics, started: time.Now()}
	ctx = context.WithValue(ctx, runKey{}, r)

	defer func() {
		if rec := recover(); rec != nil {
			r.fail(&PanicError{Value: rec, Line: panicLine(), Stack: stack()}, "")
		}
		out = r.finish(ctx)
	}()

	r.exec(ctx)
	return out
}
