package console

import (
	"context"

	"github.com/dmitrymomot/console/internal"
	"github.com/dmitrymomot/console/pkg/module"
)

// Type aliases - public API
type (
	// App bootstraps console requests.
	App = internal.App

	// Option configures the application.
	Option = internal.Option

	// Outcome is the result of one run: kind, last stage, body and exit code.
	Outcome = internal.Outcome

	// Kind tags how a run ended.
	Kind = internal.Kind

	// Stage is a bootstrap state.
	Stage = internal.Stage

	// ConfigError reports an environment the bootstrap cannot run in.
	ConfigError = internal.ConfigError

	// PanicError wraps a value recovered from a panicking stage.
	PanicError = internal.PanicError

	// Module is a unit of console functionality addressed by routes.
	Module = module.Module

	// Env holds the collaborators shared with modules.
	Env = module.Env

	// Call is the per-dispatch context handed to an action.
	Call = module.Call

	// Registrar collects a module's actions.
	Registrar = module.Registrar
)

// Outcome kinds.
const (
	OutcomeOK             = internal.OutcomeOK
	OutcomeNotFound       = internal.OutcomeNotFound
	OutcomeDispatchError  = internal.OutcomeDispatchError
	OutcomeStorageFailure = internal.OutcomeStorageFailure
	OutcomeCritical       = internal.OutcomeCritical
)

// Bootstrap stages, in order.
const (
	StageInit               = internal.StageInit
	StageRequestBuilt       = internal.StageRequestBuilt
	StageResponseBuilt      = internal.StageResponseBuilt
	StagePoolReady          = internal.StagePoolReady
	StageRouterReady        = internal.StageRouterReady
	StageModulesInitialized = internal.StageModulesInitialized
	StageRouted             = internal.StageRouted
	StageDispatched         = internal.StageDispatched
	StageRendered           = internal.StageRendered
	StageEmitted            = internal.StageEmitted
)

// Errors
var (
	ErrConfig = internal.ErrConfig
	ErrPanic  = internal.ErrPanic
)

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := console.New(
//	    console.WithModules(dashboard.New(), costobject.New(), system.New()),
//	)
//	out := app.Run(ctx, []string{"/en/dashboard"})
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// Run is a shortcut for New(opts...).Run(ctx, args).
func Run(ctx context.Context, args []string, opts ...Option) Outcome {
	return internal.New(opts...).Run(ctx, args)
}

// Classify maps an error to the outcome kind it would produce.
func Classify(err error) Kind {
	return internal.Classify(err)
}
