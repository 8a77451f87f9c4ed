// Package dashboard is the console landing module.
package dashboard

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/view"
)

// ID is the module id used in manifests and route targets.
const ID = "dashboard"

//go:embed translations
var translations embed.FS

// Module renders an overview of the current request.
type Module struct{}

// New creates the dashboard module.
func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return ID }

func (m *Module) Init(_ context.Context, _ *module.Env) error { return nil }

// Actions registers "show".
func (m *Module) Actions(r module.Registrar) {
	r.Action("show", m.show)
}

// Translations implements module.Translator.
func (m *Module) Translations() fs.FS {
	sub, err := fs.Sub(translations, "translations")
	if err != nil {
		return nil
	}
	return sub
}

func (m *Module) show(_ context.Context, c *module.Call) (any, error) {
	var roles []string
	accounts := 0
	if c.Env != nil {
		if c.Env.Pool != nil {
			roles = c.Env.Pool.Roles()
		}
		if c.Env.Accounts != nil {
			accounts = c.Env.Accounts.Count()
		}
	}

	rows := [][]string{
		{c.T("Dashboard", "Language"), c.Response.Localization().Language()},
		{c.T("Dashboard", "Path"), c.Request.URI().Path()},
		{c.T("Dashboard", "Request"), c.Request.ID()},
		{c.T("Dashboard", "Roles"), strings.Join(roles, ", ")},
		{c.T("Dashboard", "Accounts"), strconv.Itoa(accounts)},
	}

	title := c.T("Dashboard", "Title")
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, title+"\n\n"); err != nil {
			return err
		}
		return view.Table([]string{"", ""}, rows).Render(ctx, w)
	}), nil
}
