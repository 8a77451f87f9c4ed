// Package settings reads core settings from the settings(name, content) table.
package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/console/pkg/cache"
	"github.com/dmitrymomot/console/pkg/db"
)

var (
	ErrNilConnection = errors.New("settings: nil connection")
	ErrNotFound      = errors.New("settings: not found")
	ErrEmptyName     = errors.New("settings: empty name")
)

const (
	selectQuery = `SELECT content FROM settings WHERE name = $1`
	upsertQuery = `INSERT INTO settings (name, content) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content`

	cachePrefix = "settings:"
	defaultTTL  = 5 * time.Minute
)

// Store reads settings through an optional cache.
type Store struct {
	conn  db.Conn
	cache cache.Cache[string]
	ttl   time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long values stay cached. Default: 5m.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// New creates a store over conn. c may be nil to disable caching.
func New(conn db.Conn, c cache.Cache[string], opts ...Option) (*Store, error) {
	if conn == nil {
		return nil, ErrNilConnection
	}
	s := &Store{conn: conn, cache: c, ttl: defaultTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the content of each named setting.
// A missing name fails the call with ErrNotFound.
func (s *Store) Get(ctx context.Context, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, err := s.get(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

// Value returns one setting.
func (s *Store) Value(ctx context.Context, name string) (string, error) {
	return s.get(ctx, name)
}

// Set writes a setting and drops its cached value.
func (s *Store) Set(ctx context.Context, name, content string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := s.conn.Exec(ctx, upsertQuery, name, content); err != nil {
		return fmt.Errorf("settings: set %q: %w", name, err)
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cachePrefix+name)
	}
	return nil
}

func (s *Store) get(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if s.cache == nil {
		return s.load(ctx, name)
	}
	return cache.GetOrSet(ctx, s.cache, cachePrefix+name, func(ctx context.Context) (string, time.Duration, error) {
		v, err := s.load(ctx, name)
		return v, s.ttl, err
	})
}

func (s *Store) load(ctx context.Context, name string) (string, error) {
	var content string
	err := s.conn.QueryRow(ctx, selectQuery, name).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("settings: get %q: %w", name, err)
	}
	return content, nil
}
