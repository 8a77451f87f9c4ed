package module

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/dmitrymomot/console/pkg/account"
	"github.com/dmitrymomot/console/pkg/cache"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/health"
	"github.com/dmitrymomot/console/pkg/i18n"
	"github.com/dmitrymomot/console/pkg/message"
	"github.com/dmitrymomot/console/pkg/settings"
)

// Module is a unit of console functionality addressed by routes as
// (module id, action name).
//
// Example:
//
//	type Dashboard struct{}
//
//	func (Dashboard) ID() string { return "dashboard" }
//
//	func (Dashboard) Init(ctx context.Context, env *module.Env) error { return nil }
//
//	func (d Dashboard) Actions(r module.Registrar) {
//	    r.Action("show", d.show)
//	}
type Module interface {
	ID() string

	// Init runs once per process, after every module ordered before it.
	Init(ctx context.Context, env *Env) error

	Actions(r Registrar)
}

// Translator is implemented by modules that ship translations laid out as
// {lang}/{namespace}.yaml.
type Translator interface {
	Translations() fs.FS
}

// Action handles one dispatched request. The returned value is stored in the
// response under "dispatch". Errors are not recovered by the dispatcher.
type Action func(ctx context.Context, c *Call) (any, error)

// Registrar collects a module's actions.
type Registrar interface {
	Action(name string, fn Action)
}

// Env holds the collaborators shared with modules.
type Env struct {
	Logger   *slog.Logger
	Pool     *db.Pool
	Cache    *cache.Pool
	Settings *settings.Store
	Accounts *account.Manager
	I18n     *i18n.I18n
	Checks   health.Checks
	URI      message.URIContext
}

// Call is the per-dispatch context handed to an Action.
type Call struct {
	Env      *Env
	Request  *message.Request
	Response *message.Response
	Params   map[string]string
	URI      message.URIContext
}

// Param returns a path parameter captured by the route.
func (c *Call) Param(name string) string {
	return c.Params[name]
}

// T translates for the response language.
func (c *Call) T(namespace, key string, placeholders ...i18n.M) string {
	var (
		tr   *i18n.I18n
		lang string
	)
	if c.Env != nil {
		tr = c.Env.I18n
	}
	if c.Response != nil {
		lang = c.Response.Localization().Language()
	}
	return i18n.NewTranslator(tr, lang).T(namespace, key, placeholders...)
}

// Logger returns the environment logger or a discarding one.
func (c *Call) Logger() *slog.Logger {
	if c.Env == nil || c.Env.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Env.Logger
}
