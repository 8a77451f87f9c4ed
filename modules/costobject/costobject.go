// Package costobject manages cost objects: list and create.
package costobject

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/i18n"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/view"
)

// ID is the module id used in manifests and route targets.
const ID = "costobject"

// Namespace holds the navigation labels.
const Namespace = "Navigation"

const (
	listQuery   = `SELECT id, name FROM cost_objects ORDER BY id`
	insertQuery = `INSERT INTO cost_objects (name) VALUES ($1) RETURNING id`
)

var ErrEmptyName = errors.New("costobject: name is required")

//go:embed translations
var translations embed.FS

// CostObject is one row of cost_objects.
type CostObject struct {
	Name string
	ID   int64
}

// Module exposes the list and create actions.
type Module struct{}

// New creates the cost object module.
func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return ID }

// Init checks that the roles the actions use are registered.
func (m *Module) Init(_ context.Context, env *module.Env) error {
	if env == nil || env.Pool == nil {
		return nil
	}
	for _, role := range []string{db.RoleSelect, db.RoleInsert} {
		if _, err := env.Pool.Get(role); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) Actions(r module.Registrar) {
	r.Action("list", m.list)
	r.Action("create", m.create)
}

// Translations implements module.Translator.
func (m *Module) Translations() fs.FS {
	sub, err := fs.Sub(translations, "translations")
	if err != nil {
		return nil
	}
	return sub
}

func (m *Module) list(ctx context.Context, c *module.Call) (any, error) {
	conn, err := c.Env.Pool.Get(db.RoleSelect)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, listQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items [][]string
	for rows.Next() {
		var co CostObject
		if err := rows.Scan(&co.ID, &co.Name); err != nil {
			return nil, err
		}
		items = append(items, []string{strconv.FormatInt(co.ID, 10), co.Name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return c.T(Namespace, "Empty"), nil
	}
	return view.Table([]string{"ID", c.T(Namespace, "CostObject")}, items), nil
}

// create reads the name from the "name" query argument or the {name} route
// parameter.
func (m *Module) create(ctx context.Context, c *module.Call) (any, error) {
	name := strings.TrimSpace(c.Request.URI().Query("name"))
	if name == "" {
		name = strings.TrimSpace(c.Param("name"))
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	conn, err := c.Env.Pool.Get(db.RoleInsert)
	if err != nil {
		return nil, err
	}

	var id int64
	err = db.WithTx(ctx, conn, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, insertQuery, name).Scan(&id)
	})
	if err != nil {
		return nil, fmt.Errorf("create cost object: %w", err)
	}

	return c.T(Namespace, "Created", i18n.M{"name": name, "id": id}), nil
}
