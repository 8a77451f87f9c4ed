// Package system provides maintenance actions: health, migrate and setting.
package system

import (
	"context"
	"embed"
	"io/fs"
	"time"

	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/health"
	"github.com/dmitrymomot/console/pkg/module"
)

// ID is the module id used in manifests and route targets.
const ID = "system"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations returns the embedded SQL migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil
	}
	return sub
}

// Option configures the module.
type Option func(*Module)

// WithHealthTimeout bounds the health run. Default: 5s.
func WithHealthTimeout(d time.Duration) Option {
	return func(m *Module) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithMigrations replaces the embedded migrations.
func WithMigrations(fsys fs.FS) Option {
	return func(m *Module) {
		if fsys != nil {
			m.migrations = fsys
		}
	}
}

// WithMigrator replaces the function applying migrations.
func WithMigrator(fn func(ctx context.Context, conn db.Conn, fsys fs.FS) error) Option {
	return func(m *Module) {
		if fn != nil {
			m.migrate = fn
		}
	}
}

// Module runs maintenance actions against the current environment.
type Module struct {
	migrations fs.FS
	migrate    func(ctx context.Context, conn db.Conn, fsys fs.FS) error
	timeout    time.Duration
}

// New creates the system module.
func New(opts ...Option) *Module {
	m := &Module{migrations: Migrations(), timeout: 5 * time.Second}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Module) ID() string { return ID }

func (m *Module) Init(_ context.Context, _ *module.Env) error { return nil }

func (m *Module) Actions(r module.Registrar) {
	r.Action("health", m.health)
	r.Action("migrate", m.migrateAction)
	r.Action("setting", m.setting)
}

// health pings every registered check. Failing checks are reported in the
// body, not returned as errors.
func (m *Module) health(ctx context.Context, c *module.Call) (any, error) {
	report := health.Run(ctx, c.Env.Checks,
		health.WithTimeout(m.timeout),
		health.WithLogger(c.Logger()),
	)
	return report, nil
}

func (m *Module) migrateAction(ctx context.Context, c *module.Call) (any, error) {
	conn, err := c.Env.Pool.Get(db.RoleSchema)
	if err != nil {
		return nil, err
	}
	migrate := m.migrate
	if migrate == nil {
		migrate = func(ctx context.Context, conn db.Conn, fsys fs.FS) error {
			return db.Migrate(ctx, conn, fsys, db.DefaultMigrationsTable, c.Logger())
		}
	}
	if err := migrate(ctx, conn, m.migrations); err != nil {
		return nil, err
	}
	return "migrations applied", nil
}

func (m *Module) setting(ctx context.Context, c *module.Call) (any, error) {
	name := c.Param("name")
	value, err := c.Env.Settings.Value(ctx, name)
	if err != nil {
		return nil, err
	}
	return map[string]string{name: value}, nil
}
