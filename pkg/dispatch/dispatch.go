// Package dispatch resolves a route target to a module action and invokes it.
//
// Resolution failures are returned as *TargetError. Errors and panics raised
// by the action itself pass through untouched: the caller decides how to
// classify them.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/console/pkg/message"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/router"
)

// DataKey is the response key holding the action result.
const DataKey = "dispatch"

var ErrTarget = errors.New("dispatch: cannot resolve target")

// TargetError reports a route target with no invokable action.
type TargetError struct {
	Err    error
	Target router.Target
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("target %s: %v", e.Target, e.Err)
}

func (e *TargetError) Unwrap() error { return e.Err }

// Is matches ErrTarget.
func (e *TargetError) Is(target error) bool { return target == ErrTarget }

// Resolver finds the action for a (module, action) pair.
// *module.Manager implements it.
type Resolver interface {
	Action(moduleID, action string) (module.Action, error)
}

// Result is the outcome of a successful dispatch.
type Result struct {
	Data   any
	Target router.Target
}

// Dispatcher invokes module actions.
type Dispatcher struct {
	resolver Resolver
	env      *module.Env
	log      *slog.Logger
}

// New creates a dispatcher that hands env to every action.
func New(resolver Resolver, env *module.Env) *Dispatcher {
	d := &Dispatcher{resolver: resolver, env: env, log: slog.New(slog.DiscardHandler)}
	if env != nil && env.Logger != nil {
		d.log = env.Logger
	}
	return d
}

// Dispatch resolves m.Target and runs the action with req and resp.
// The action's result is stored in resp under DataKey.
func (d *Dispatcher) Dispatch(ctx context.Context, m router.Match, req *message.Request, resp *message.Response) (Result, error) {
	if m.Target.Module == "" || m.Target.Action == "" {
		return Result{}, &TargetError{Target: m.Target, Err: router.ErrMissingTarget}
	}

	fn, err := d.resolver.Action(m.Target.Module, m.Target.Action)
	if err != nil {
		return Result{}, &TargetError{Target: m.Target, Err: err}
	}

	call := &module.Call{
		Env:      d.env,
		Request:  req,
		Response: resp,
		Params:   m.Params,
	}
	if d.env != nil {
		call.URI = d.env.URI
	}

	d.log.DebugContext(ctx, "dispatching",
		slog.String("target", m.Target.String()),
		slog.String("rule", m.Rule),
	)

	data, err := fn(ctx, call)
	if err != nil {
		return Result{Target: m.Target}, err
	}

	resp.Set(DataKey, data)
	return Result{Target: m.Target, Data: data}, nil
}
