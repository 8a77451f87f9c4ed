package costobject_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/console/modules/costobject"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/i18n"
	"github.com/dmitrymomot/console/pkg/message"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/view"
)

type store struct {
	items   []costobject.CostObject
	nextID  int64
	commits int
	rolls   int
}

type rows struct {
	pgx.Rows
	items []costobject.CostObject
	pos   int
}

func (r *rows) Next() bool {
	r.pos++
	return r.pos <= len(r.items)
}

func (r *rows) Scan(dest ...any) error {
	it := r.items[r.pos-1]
	*dest[0].(*int64) = it.ID
	*dest[1].(*string) = it.Name
	return nil
}

func (r *rows) Close()     {}
func (r *rows) Err() error { return nil }

type row struct {
	err error
	id  int64
}

func (r row) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	return nil
}

type tx struct {
	pgx.Tx
	s *store
}

func (t *tx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	name := args[0].(string)
	if name == "fail" {
		return row{err: errors.New("unique violation")}
	}
	t.s.nextID++
	t.s.items = append(t.s.items, costobject.CostObject{ID: t.s.nextID, Name: name})
	return row{id: t.s.nextID}
}

func (t *tx) Commit(context.Context) error   { t.s.commits++; return nil }
func (t *tx) Rollback(context.Context) error { t.s.rolls++; return nil }

type conn struct {
	db.Conn
	s *store
}

func (c *conn) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return &rows{items: c.s.items}, nil
}

func (c *conn) Begin(context.Context) (pgx.Tx, error) { return &tx{s: c.s}, nil }
func (c *conn) Close()                                {}

type registrar map[string]module.Action

func (r registrar) Action(name string, fn module.Action) { r[name] = fn }

func setup(t *testing.T) (*store, *module.Env, registrar) {
	t.Helper()

	s := &store{}
	pool := db.NewPool(db.WithDialer(func(context.Context, string, db.Config) (db.Conn, error) {
		return &conn{s: s}, nil
	}))
	cfgs := make(map[string]db.Config)
	for _, role := range db.RequiredRoles {
		cfgs[role] = db.Config{Driver: "pgsql", Host: "localhost", Login: role, Database: "oms"}
	}
	require.NoError(t, pool.CreateRoles(context.Background(), cfgs))

	m := costobject.New()
	tr, err := i18n.New(i18n.WithLanguages("en", "de"), i18n.WithYAMLDir(m.Translations()))
	require.NoError(t, err)

	env := &module.Env{Pool: pool, I18n: tr}
	require.NoError(t, m.Init(context.Background(), env))

	actions := registrar{}
	m.Actions(actions)
	return s, env, actions
}

func call(env *module.Env, path, lang string, params map[string]string) *module.Call {
	req, _ := message.BuildRequest([]string{path}, "/", "en")
	resp := message.BuildResponse(req, []string{lang})
	return &module.Call{Env: env, Request: req, Response: resp, Params: params}
}

func TestCreateAndList(t *testing.T) {
	t.Parallel()

	s, env, actions := setup(t)
	ctx := context.Background()

	data, err := actions["list"](ctx, call(env, "/en/costobjects", "en", nil))
	require.NoError(t, err)
	assert.Equal(t, "No cost objects yet", data)

	data, err = actions["create"](ctx, call(env, "/de/costobjects/create?name=Marketing", "de", nil))
	require.NoError(t, err)
	assert.Equal(t, "Kostenträger Marketing mit ID 1 angelegt", data)

	data, err = actions["create"](ctx, call(env, "/en/costobjects/create/Sales", "en", map[string]string{"name": "Sales"}))
	require.NoError(t, err)
	assert.Equal(t, "Cost object Sales created with id 2", data)
	assert.Equal(t, 2, s.commits)

	data, err = actions["list"](ctx, call(env, "/en/costobjects", "en", nil))
	require.NoError(t, err)

	resp := message.NewResponse(message.NewLocalization("en"))
	resp.Set(view.DataKey, data)
	resp.Set(message.ContentKey, view.New(view.IndexTemplate, resp))
	body, err := resp.Body(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ID  Cost object\n1   Marketing\n2   Sales\n", body)
}

func TestCreate_Errors(t *testing.T) {
	t.Parallel()

	s, env, actions := setup(t)
	ctx := context.Background()

	_, err := actions["create"](ctx, call(env, "/en/costobjects/create", "en", nil))
	require.ErrorIs(t, err, costobject.ErrEmptyName)

	_, err = actions["create"](ctx, call(env, "/en/costobjects/create?name=fail", "en", nil))
	require.Error(t, err)
	assert.Equal(t, 1, s.rolls)
	assert.Zero(t, s.commits)
}
