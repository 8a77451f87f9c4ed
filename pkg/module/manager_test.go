package module_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/console/pkg/module"
)

type stubModule struct {
	initErr    error
	initPanic  any
	onInit     func()
	actions    map[string]module.Action
	id         string
	initCalled int
}

func (s *stubModule) ID() string { return s.id }

func (s *stubModule) Init(context.Context, *module.Env) error {
	s.initCalled++
	if s.onInit != nil {
		s.onInit()
	}
	if s.initPanic != nil {
		panic(s.initPanic)
	}
	return s.initErr
}

func (s *stubModule) Actions(r module.Registrar) {
	for name, fn := range s.actions {
		r.Action(name, fn)
	}
}

type translatedModule struct {
	stubModule
}

func (translatedModule) Translations() fs.FS {
	return fstest.MapFS{
		"en/Navigation.yaml": {Data: []byte("CostObjects: Cost objects\n")},
	}
}

func noopAction(context.Context, *module.Call) (any, error) { return nil, nil }

func TestManager_ActiveModules(t *testing.T) {
	t.Parallel()

	m := module.NewManager([]module.Descriptor{
		{ID: "system", Active: true, Order: 0},
		{ID: "costobject", Active: true, Order: 20},
		{ID: "reports", Active: false, Order: 5},
		{ID: "dashboard", Active: true, Order: 10},
		{ID: "accounting", Active: true, Order: 20},
	})
	require.NoError(t, m.Register(
		&stubModule{id: "system"},
		&stubModule{id: "costobject"},
		&stubModule{id: "dashboard"},
		&stubModule{id: "accounting"},
	))

	active, err := m.ActiveModules()
	require.NoError(t, err)

	ids := make([]string, 0, len(active))
	for _, d := range active {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"system", "dashboard", "accounting", "costobject"}, ids)
}

func TestManager_ActiveModulesErrors(t *testing.T) {
	t.Parallel()

	t.Run("unregistered active module", func(t *testing.T) {
		t.Parallel()
		m := module.NewManager([]module.Descriptor{{ID: "ghost", Active: true}})
		_, err := m.ActiveModules()
		require.ErrorIs(t, err, module.ErrUnknownModule)
	})

	t.Run("unregistered inactive module is fine", func(t *testing.T) {
		t.Parallel()
		m := module.NewManager([]module.Descriptor{{ID: "ghost"}})
		active, err := m.ActiveModules()
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("duplicate descriptor", func(t *testing.T) {
		t.Parallel()
		m := module.NewManager([]module.Descriptor{{ID: "a"}, {ID: "a"}})
		_, err := m.ActiveModules()
		require.ErrorIs(t, err, module.ErrDuplicateDescriptor)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		t.Parallel()
		m := module.NewManager(nil)
		require.ErrorIs(t, m.Register(&stubModule{id: "a"}, &stubModule{id: "a"}), module.ErrDuplicateModule)
		require.ErrorIs(t, m.Register(&stubModule{}), module.ErrEmptyID)
	})
}

func TestManager_InitOrderAndOnce(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(id string) *stubModule {
		return &stubModule{
			id:      id,
			onInit:  func() { order = append(order, id) },
			actions: map[string]module.Action{"show": noopAction},
		}
	}
	a, b, c := mk("a"), mk("b"), mk("c")

	m := module.NewManager([]module.Descriptor{
		{ID: "c", Active: true, Order: 2},
		{ID: "a", Active: true, Order: 1},
		{ID: "b", Active: true, Order: 1},
	})
	require.NoError(t, m.Register(a, b, c))

	active, err := m.ActiveModules()
	require.NoError(t, err)
	require.NoError(t, m.Init(context.Background(), &module.Env{}, active))
	require.NoError(t, m.Init(context.Background(), &module.Env{}, active))

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, []string{"a", "b", "c"}, m.Initialized())
	assert.Equal(t, 1, a.initCalled)

	fn, err := m.Action("b", "show")
	require.NoError(t, err)
	require.NotNil(t, fn)
}

func TestManager_InitFailureStopsSequence(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	first := &stubModule{id: "first", initErr: boom}
	second := &stubModule{id: "second"}

	m := module.NewManager([]module.Descriptor{
		{ID: "first", Active: true, Order: 1},
		{ID: "second", Active: true, Order: 2},
	})
	require.NoError(t, m.Register(first, second))
	active, err := m.ActiveModules()
	require.NoError(t, err)

	err = m.Init(context.Background(), &module.Env{}, active)
	var initErr *module.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "first", initErr.Module)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, second.initCalled)

	_, err = m.Action("first", "show")
	require.ErrorIs(t, err, module.ErrModuleInactive)
}

func TestManager_InitPanicPropagates(t *testing.T) {
	t.Parallel()

	m := module.NewManager([]module.Descriptor{{ID: "faulty", Active: true}})
	require.NoError(t, m.Register(&stubModule{id: "faulty", initPanic: "nil map write"}))
	active, err := m.ActiveModules()
	require.NoError(t, err)

	assert.PanicsWithValue(t, "nil map write", func() {
		_ = m.Init(context.Background(), &module.Env{}, active)
	})
	require.ErrorIs(t, m.Init(context.Background(), &module.Env{}, active), module.ErrInitAborted)
}

func TestManager_Action(t *testing.T) {
	t.Parallel()

	m := module.NewManager([]module.Descriptor{{ID: "dashboard", Active: true}, {ID: "reports"}})
	require.NoError(t, m.Register(
		&stubModule{id: "dashboard", actions: map[string]module.Action{"show": noopAction}},
		&stubModule{id: "reports", actions: map[string]module.Action{"list": noopAction}},
	))
	active, err := m.ActiveModules()
	require.NoError(t, err)
	require.NoError(t, m.Init(context.Background(), &module.Env{}, active))

	_, err = m.Action("dashboard", "missing")
	require.ErrorIs(t, err, module.ErrActionNotFound)

	_, err = m.Action("reports", "list")
	require.ErrorIs(t, err, module.ErrModuleInactive)
}

func TestManager_InvalidAction(t *testing.T) {
	t.Parallel()

	m := module.NewManager([]module.Descriptor{{ID: "bad", Active: true}})
	require.NoError(t, m.Register(&stubModule{id: "bad", actions: map[string]module.Action{"": noopAction}}))
	active, err := m.ActiveModules()
	require.NoError(t, err)

	err = m.Init(context.Background(), &module.Env{}, active)
	require.ErrorIs(t, err, module.ErrInvalidAction)
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	manifest, err := module.LoadManifest(strings.NewReader(`
modules:
  - id: dashboard
    active: true
    order: 10
  - id: reports
`))
	require.NoError(t, err)
	assert.Equal(t, []module.Descriptor{
		{ID: "dashboard", Active: true, Order: 10},
		{ID: "reports"},
	}, manifest)

	_, err = module.LoadManifest(strings.NewReader("modules:\n  - id: x\n    enabled: true\n"))
	require.ErrorIs(t, err, module.ErrManifest)
}

func TestManager_Translations(t *testing.T) {
	t.Parallel()

	m := module.NewManager([]module.Descriptor{{ID: "costobject", Active: true}, {ID: "dashboard", Active: true}})
	require.NoError(t, m.Register(
		&translatedModule{stubModule{id: "costobject"}},
		&stubModule{id: "dashboard"},
	))
	active, err := m.ActiveModules()
	require.NoError(t, err)

	trees := m.Translations(active)
	require.Len(t, trees, 1)
	data, err := fs.ReadFile(trees[0], "en/Navigation.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cost objects")
}
