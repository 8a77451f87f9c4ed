package settings_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/console/pkg/cache"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/settings"
)

type row struct {
	err   error
	value string
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.value
	return nil
}

type fakeConn struct {
	db.Conn
	data    map[string]string
	queries atomic.Int32
	execErr error
}

func (c *fakeConn) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	c.queries.Add(1)
	v, ok := c.data[args[0].(string)]
	if !ok {
		return row{err: pgx.ErrNoRows}
	}
	return row{value: v}
}

func (c *fakeConn) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	if c.execErr != nil {
		return pgconn.CommandTag{}, c.execErr
	}
	c.data[args[0].(string)] = args[1].(string)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestNew_NilConnection(t *testing.T) {
	t.Parallel()

	_, err := settings.New(nil, nil)
	require.ErrorIs(t, err, settings.ErrNilConnection)
}

func TestStore_Get(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{data: map[string]string{"1000000009": "console", "1000000029": "en"}}
	s, err := settings.New(conn, cache.NewMemory[string]())
	require.NoError(t, err)

	ctx := context.Background()
	got, err := s.Get(ctx, "1000000009", "1000000029")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1000000009": "console", "1000000029": "en"}, got)

	_, err = s.Get(ctx, "1000000009")
	require.NoError(t, err)
	assert.Equal(t, int32(2), conn.queries.Load())

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, settings.ErrNotFound)

	_, err = s.Value(ctx, "")
	require.ErrorIs(t, err, settings.ErrEmptyName)
}

func TestStore_SetInvalidatesCache(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{data: map[string]string{"theme": "dark"}}
	s, err := settings.New(conn, cache.NewMemory[string]())
	require.NoError(t, err)

	ctx := context.Background()
	v, err := s.Value(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Set(ctx, "theme", "light"))
	v, err = s.Value(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestStore_StorageError(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{data: map[string]string{}, execErr: &pgconn.PgError{Code: "42P01", Message: `relation "settings" does not exist`}}
	s, err := settings.New(conn, nil)
	require.NoError(t, err)

	err = s.Set(context.Background(), "theme", "light")
	require.Error(t, err)
	assert.True(t, db.IsStorageError(err))
}
