package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool roles. All six are required at bootstrap.
const (
	RoleAdmin  = "admin"
	RoleInsert = "insert"
	RoleSelect = "select"
	RoleUpdate = "update"
	RoleDelete = "delete"
	RoleSchema = "schema"
)

// RequiredRoles lists the roles registered at bootstrap, in creation order.
var RequiredRoles = []string{RoleAdmin, RoleInsert, RoleSelect, RoleUpdate, RoleDelete, RoleSchema}

// Conn is the subset of *pgxpool.Pool the application relies on.
type Conn interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// Dialer opens the connection for a role.
type Dialer func(ctx context.Context, role string, cfg Config) (Conn, error)

// PgxDialer opens a pgx pool per role.
func PgxDialer(ctx context.Context, _ string, cfg Config) (Conn, error) {
	return Connect(ctx, cfg)
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithDialer replaces the connection factory.
func WithDialer(d Dialer) PoolOption {
	return func(p *Pool) {
		if d != nil {
			p.dialer = d
		}
	}
}

// WithDefaultRole sets the role returned by Get without arguments.
// Default: admin.
func WithDefaultRole(role string) PoolOption {
	return func(p *Pool) {
		if role != "" {
			p.defaultRole = role
		}
	}
}

// Pool is a registry of connections keyed by role.
// Roles are created once during the setup phase; Seal ends that phase.
// Lookups are safe for concurrent use.
type Pool struct {
	conns       map[string]Conn
	dialer      Dialer
	defaultRole string
	roles       []string
	mu          sync.RWMutex
	sealed      bool
}

// NewPool creates an empty pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		conns:       make(map[string]Conn),
		dialer:      PgxDialer,
		defaultRole: RoleAdmin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create registers the connection for role.
// It fails with a *PoolConfigError when the role exists, the pool is sealed,
// or cfg is malformed. Dial failures from any Dialer wrap
// ErrFailedToOpenDBConnection.
func (p *Pool) Create(ctx context.Context, role string, cfg Config) error {
	if role == "" {
		return &PoolConfigError{Role: role, Err: ErrEmptyRole}
	}
	if err := cfg.Validate(); err != nil {
		return &PoolConfigError{Role: role, Err: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sealed {
		return &PoolConfigError{Role: role, Err: ErrPoolSealed}
	}
	if _, ok := p.conns[role]; ok {
		return &PoolConfigError{Role: role, Err: ErrRoleExists}
	}

	conn, err := p.dialer(ctx, role, cfg)
	if err != nil {
		if errors.Is(err, ErrFailedToOpenDBConnection) {
			return fmt.Errorf("role %q: %w", role, err)
		}
		return fmt.Errorf("%w: role %q: %w", ErrFailedToOpenDBConnection, role, err)
	}

	p.conns[role] = conn
	p.roles = append(p.roles, role)
	return nil
}

// CreateRoles registers every role from configs, in the given order.
// With no roles given, RequiredRoles is used. A role missing from configs
// fails the whole call; nothing is silently defaulted.
func (p *Pool) CreateRoles(ctx context.Context, configs map[string]Config, roles ...string) error {
	if len(roles) == 0 {
		roles = RequiredRoles
	}
	for _, role := range roles {
		cfg, ok := configs[role]
		if !ok {
			return &PoolConfigError{Role: role, Err: ErrMissingRoleConfig}
		}
		if err := p.Create(ctx, role, cfg); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the connection for role, or the default role when none is given.
func (p *Pool) Get(role ...string) (Conn, error) {
	name := p.defaultRole
	if len(role) > 0 && role[0] != "" {
		name = role[0]
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	conn, ok := p.conns[name]
	if !ok {
		return nil, &PoolLookupError{Role: name}
	}
	return conn, nil
}

// Seal ends the creation phase. Later Create calls fail.
func (p *Pool) Seal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sealed = true
}

// Sealed reports whether the creation phase has ended.
func (p *Pool) Sealed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sealed
}

// Roles returns the registered roles in creation order.
func (p *Pool) Roles() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.roles)
}

// Close closes every connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.conns {
		conn.Close()
	}
}
