// Package console bootstraps a command-line invocation as a request.
//
// One process serves one request: the first positional argument is parsed as
// a path with an optional query, the language is resolved from its first
// segment, the route table maps it to a (module, action) target, active
// modules are initialized, the action runs and its result is rendered to
// stdout. A body is written on every path, including failures.
//
// # Quick Start
//
//	func main() {
//	    out := console.Run(context.Background(), os.Args[1:],
//	        console.WithStderrLogger(),
//	        console.WithModules(dashboard.New(), system.New()),
//	    )
//	    os.Exit(out.ExitCode)
//	}
//
// # Configuration
//
// Configuration is loaded with [github.com/dmitrymomot/console/pkg/config]
// from console.yaml in the working directory or ./configs, from the file named
// by CONSOLE_CONFIG_FILE, and from CONSOLE_ environment variables. The keys the
// bootstrap depends on are:
//
//	log.file.path                 log file, created on demand
//	db.core.masters.{role}        one connection per role: admin, insert,
//	                              select, update, delete, schema
//	app.path                      root path requests are relative to
//	app.routes                    route table (.yaml or .hcl)
//	app.mode                      must be "cli"
//	language                      supported languages, first is the default
//	modules                       module manifest: id, active, order
//
// # Modules
//
// Modules implement [Module]. Init runs once, in manifest order; Actions
// registers the handlers that route targets name:
//
//	type Dashboard struct{}
//
//	func (Dashboard) ID() string { return "dashboard" }
//
//	func (Dashboard) Init(ctx context.Context, env *console.Env) error { return nil }
//
//	func (Dashboard) Actions(r console.Registrar) {
//	    r.Action("show", func(ctx context.Context, c *console.Call) (any, error) {
//	        return c.T("Navigation", "Dashboard"), nil
//	    })
//	}
//
// # Outcomes
//
// [App.Run] returns an [Outcome]. Route misses and unresolvable targets are
// rendered answers with exit code 0. Storage failures ("Database error: ...")
// and anything unexpected ("Critical error: ...") exit with code 1 and produce
// one critical log entry.
package console
