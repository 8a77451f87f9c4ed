package internal_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/console/internal"
	"github.com/dmitrymomot/console/pkg/config"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/logger"
	"github.com/dmitrymomot/console/pkg/metrics"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/router"
)

type fakeConn struct {
	db.Conn
}

func (fakeConn) Ping(context.Context) error { return nil }
func (fakeConn) Close()                     {}

func fakeDialer(_ context.Context, _ string, _ db.Config) (db.Conn, error) {
	return fakeConn{}, nil
}

// recorder is a slog.Handler collecting records.
type recorder struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recorder) Enabled(context.Context, slog.Level) bool { return true }

func (h *recorder) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recorder) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recorder) WithGroup(string) slog.Handler      { return h }

func (h *recorder) critical() []slog.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []slog.Record
	for _, r := range h.records {
		if r.Level == logger.LevelCritical {
			out = append(out, r)
		}
	}
	return out
}

func attr(r slog.Record, key string) string {
	var val string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			val = a.Value.String()
			return false
		}
		return true
	})
	return val
}

type testModule struct {
	initErr   error
	initPanic any
	id        string
	inits     *[]string
}

func (m testModule) ID() string { return m.id }

func (m testModule) Init(_ context.Context, _ *module.Env) error {
	if m.inits != nil {
		*m.inits = append(*m.inits, m.id)
	}
	if m.initPanic != nil {
		panic(m.initPanic)
	}
	return m.initErr
}

func (m testModule) Actions(r module.Registrar) {
	r.Action("show", func(_ context.Context, c *module.Call) (any, error) {
		return "Dashboard (" + c.Response.Localization().Language() + ")", nil
	})
	r.Action("fail", func(context.Context, *module.Call) (any, error) {
		return nil, errors.New("boom <b>bold</b>")
	})
	r.Action("pool", func(_ context.Context, c *module.Call) (any, error) {
		_, err := c.Env.Pool.Get("reporting")
		return nil, err
	})
}

func testConfig() *config.Config {
	masters := make(map[string]db.Config, len(db.RequiredRoles))
	for _, role := range db.RequiredRoles {
		masters[role] = db.Config{Driver: "pgsql", Host: "localhost", Login: role, Database: "oms"}
	}
	return &config.Config{
		Log:      config.LogConfig{File: config.LogFileConfig{Path: "unused.log"}},
		App:      config.AppConfig{Path: "/", Mode: config.ModeCLI},
		Language: []string{"en", "de"},
		DB:       config.DBConfig{Core: config.CoreConfig{Masters: masters}},
		Modules: []module.Descriptor{
			{ID: "dashboard", Active: true, Order: 1},
			{ID: "reports", Active: false},
		},
	}
}

var testRules = []router.Rule{
	{Name: "dashboard", Pattern: "/{lang}/dashboard", Module: "dashboard", Action: "show"},
	{Name: "broken", Pattern: "/{lang}/broken", Module: "dashboard", Action: "fail"},
	{Name: "missing", Pattern: "/{lang}/missing", Module: "dashboard", Action: "nope"},
	{Name: "reports", Pattern: "/{lang}/reports", Module: "reports", Action: "show"},
	{Name: "pool", Pattern: "/{lang}/pool", Module: "dashboard", Action: "pool"},
}

type harness struct {
	out  *bytes.Buffer
	logs *recorder
	app  *internal.App
}

func newHarness(cfg *config.Config, opts ...internal.Option) *harness {
	h := &harness{out: &bytes.Buffer{}, logs: &recorder{}}
	base := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithLogger(slog.New(h.logs)),
		internal.WithFileLoggerDisabled(),
		internal.WithDialer(fakeDialer),
		internal.WithRoutes(testRules...),
		internal.WithOutput(h.out),
		internal.WithModules(testModule{id: "dashboard"}, testModule{id: "reports"}),
	}
	h.app = internal.New(append(base, opts...)...)
	return h
}

func TestRun_Dashboard(t *testing.T) {
	t.Parallel()

	h := newHarness(testConfig())
	out := h.app.Run(context.Background(), []string{"/en/dashboard"})

	require.NoError(t, out.Err)
	assert.Equal(t, internal.OutcomeOK, out.Kind)
	assert.Equal(t, internal.StageEmitted, out.Stage)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, "en", out.Language)
	assert.Equal(t, "dashboard:show", out.Target)
	assert.NotEmpty(t, out.RequestID)
	assert.Equal(t, "Dashboard (en)", out.Body)
	assert.Equal(t, out.Body, h.out.String())
	assert.Empty(t, h.logs.critical())
}

func TestRun_LanguageFromPath(t *testing.T) {
	t.Parallel()

	h := newHarness(testConfig())
	out := h.app.Run(context.Background(), []string{"/de/dashboard"})

	require.Equal(t, internal.OutcomeOK, out.Kind)
	assert.Equal(t, "Dashboard (de)", out.Body)
}

func TestRun_NotFound(t *testing.T) {
	t.Parallel()

	h := newHarness(testConfig())
	out := h.app.Run(context.Background(), []string{"/xx/unknown"})

	assert.Equal(t, internal.OutcomeNotFound, out.Kind)
	assert.ErrorIs(t, out.Err, router.ErrRouteNotFound)
	assert.Equal(t, "Not found: /xx/unknown", out.Body)
	assert.Equal(t, out.Body, h.out.String())
	assert.Equal(t, "en", out.Language)
	assert.Equal(t, 0, out.ExitCode)
	assert.Equal(t, internal.StageEmitted, out.Stage)
	assert.Empty(t, h.logs.critical())
}

func TestRun_DispatchError(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/en/missing", "/en/reports"} {
		h := newHarness(testConfig())
		out := h.app.Run(context.Background(), []string{path})

		assert.Equal(t, internal.OutcomeDispatchError, out.Kind, path)
		assert.True(t, strings.HasPrefix(out.Body, internal.PrefixDispatch), out.Body)
		assert.Equal(t, 0, out.ExitCode)
		assert.Empty(t, h.logs.critical())
	}
}

func TestRun_MissingRole(t *testing.T) {
	t.Parallel()

	for _, role := range db.RequiredRoles {
		t.Run(role, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig()
			delete(cfg.DB.Core.Masters, role)

			var inits []string
			h := newHarness(cfg, internal.WithModules(testModule{id: "tracker", inits: &inits}))
			cfg.Modules = append(cfg.Modules, module.Descriptor{ID: "tracker", Active: true})

			out := h.app.Run(context.Background(), []string{"/en/dashboard"})

			assert.Equal(t, internal.OutcomeStorageFailure, out.Kind)
			assert.ErrorIs(t, out.Err, db.ErrPoolConfig)
			assert.ErrorIs(t, out.Err, db.ErrMissingRoleConfig)
			assert.True(t, strings.HasPrefix(out.Body, internal.PrefixStorage), out.Body)
			assert.Contains(t, out.Body, role)
			assert.Equal(t, 1, out.ExitCode)
			assert.Empty(t, out.Target, "routing must not happen")
			assert.Empty(t, inits, "modules must not be initialized")

			crit := h.logs.critical()
			require.Len(t, crit, 1)
			assert.Equal(t, internal.StagePoolReady.String(), attr(crit[0], "stage"))
			assert.Contains(t, attr(crit[0], "line"), "run.go")
		})
	}
}

func TestRun_LookupFailureInAction(t *testing.T) {
	t.Parallel()

	h := newHarness(testConfig())
	out := h.app.Run(context.Background(), []string{"/en/pool"})

	assert.Equal(t, internal.OutcomeStorageFailure, out.Kind)
	assert.ErrorIs(t, out.Err, db.ErrPoolLookup)
	assert.True(t, strings.HasPrefix(out.Body, internal.PrefixStorage))
	assert.Len(t, h.logs.critical(), 1)
}

func TestRun_ModulePanic(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Modules = append(cfg.Modules, module.Descriptor{ID: "faulty", Active: true, Order: 2})

	h := newHarness(cfg, internal.WithModules(testModule{id: "faulty", initPanic: "init exploded"}))
	var out internal.Outcome
	require.NotPanics(t, func() {
		out = h.app.Run(context.Background(), []string{"/en/dashboard"})
	})

	assert.Equal(t, internal.OutcomeCritical, out.Kind)
	assert.True(t, internal.IsPanicError(out.Err))
	assert.Equal(t, "Critical error: init exploded", out.Body)
	assert.Equal(t, out.Body, h.out.String())
	assert.Equal(t, 1, out.ExitCode)
	assert.Equal(t, internal.StageEmitted, out.Stage)

	crit := h.logs.critical()
	require.Len(t, crit, 1)
	assert.Equal(t, "init exploded", attr(crit[0], "message"))
	assert.Equal(t, internal.StageModulesInitialized.String(), attr(crit[0], "stage"))
	assert.Contains(t, attr(crit[0], "line"), "app_test.go")
}

func TestRun_ModuleInitError(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Modules = append(cfg.Modules, module.Descriptor{ID: "faulty", Active: true, Order: 2})

	h := newHarness(cfg, internal.WithModules(testModule{id: "faulty", initErr: errors.New("no license")}))
	out := h.app.Run(context.Background(), []string{"/en/dashboard"})

	assert.Equal(t, internal.OutcomeCritical, out.Kind)
	var initErr *module.InitError
	require.ErrorAs(t, out.Err, &initErr)
	assert.Equal(t, "faulty", initErr.Module)
	assert.True(t, strings.HasPrefix(out.Body, internal.PrefixCritical))

	crit := h.logs.critical()
	require.Len(t, crit, 1)
	assert.Equal(t, internal.StageModulesInitialized.String(), attr(crit[0], "stage"))
	assert.Contains(t, attr(crit[0], "line"), "run.go")
}

func TestRun_HandlerErrorIsCritical(t *testing.T) {
	t.Parallel()

	h := newHarness(testConfig())
	out := h.app.Run(context.Background(), []string{"/en/broken"})

	assert.Equal(t, internal.OutcomeCritical, out.Kind)
	assert.Equal(t, "Critical error: boom bold", out.Body)

	crit := h.logs.critical()
	require.Len(t, crit, 1)
	assert.Equal(t, internal.StageDispatched.String(), attr(crit[0], "stage"))
}

func TestRun_DialFailure(t *testing.T) {
	t.Parallel()

	refused := errors.New("dial tcp: connection refused")
	h := newHarness(testConfig(), internal.WithDialer(func(context.Context, string, db.Config) (db.Conn, error) {
		return nil, refused
	}))
	out := h.app.Run(context.Background(), []string{"/en/dashboard"})

	assert.Equal(t, internal.OutcomeStorageFailure, out.Kind)
	assert.ErrorIs(t, out.Err, refused)
	assert.True(t, strings.HasPrefix(out.Body, internal.PrefixStorage), out.Body)
	assert.Contains(t, out.Body, "connection refused")
	assert.Equal(t, 1, out.ExitCode)
	assert.Empty(t, out.Target)

	crit := h.logs.critical()
	require.Len(t, crit, 1)
	assert.Equal(t, internal.StagePoolReady.String(), attr(crit[0], "stage"))
}

func TestRun_ConfigError(t *testing.T) {
	t.Parallel()

	t.Run("invalid mode", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.App.Mode = "http"
		h := newHarness(cfg)
		out := h.app.Run(context.Background(), []string{"/en/dashboard"})

		assert.Equal(t, internal.OutcomeCritical, out.Kind)
		assert.ErrorIs(t, out.Err, internal.ErrConfig)
		assert.ErrorIs(t, out.Err, config.ErrInvalidMode)
		assert.True(t, strings.HasPrefix(out.Body, internal.PrefixCritical))
		assert.Equal(t, "en", out.Language)
		assert.Empty(t, out.RequestID)
		assert.Len(t, h.logs.critical(), 1)
	})

	t.Run("loader failure", func(t *testing.T) {
		t.Parallel()

		h := newHarness(nil, internal.WithConfigLoader(func() (*config.Config, error) {
			return nil, config.ErrReadConfig
		}))
		out := h.app.Run(context.Background(), nil)

		assert.ErrorIs(t, out.Err, config.ErrReadConfig)
		assert.Equal(t, internal.StageEmitted, out.Stage)
		assert.NotEmpty(t, h.out.String())
	})
}

func TestRun_RouteTableError(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	h := newHarness(cfg, internal.WithRoutes(router.Rule{Name: "bad", Pattern: "", Module: "x", Action: "y"}))
	out := h.app.Run(context.Background(), []string{"/en/dashboard"})

	assert.Equal(t, internal.OutcomeCritical, out.Kind)
	assert.ErrorIs(t, out.Err, router.ErrRouteTable)
}

func TestRun_RoutesFromFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.App.Routes = filepath.Join("..", "configs", "routes.yaml")

	out := &bytes.Buffer{}
	app := internal.New(
		internal.WithConfig(cfg),
		internal.WithFileLoggerDisabled(),
		internal.WithDialer(fakeDialer),
		internal.WithOutput(out),
		internal.WithModules(testModule{id: "dashboard"}, testModule{id: "reports"}),
	)
	res := app.Run(context.Background(), []string{"/en/dashboard"})

	assert.Equal(t, internal.OutcomeOK, res.Kind)
	assert.Equal(t, "Dashboard (en)", out.String())
}

func TestRun_Metrics(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "console.prom")
	rec := metrics.New(metrics.WithTextfile(path))

	h := newHarness(testConfig(), internal.WithMetrics(rec))
	h.app.Run(context.Background(), []string{"/en/dashboard"})
	h.app.Run(context.Background(), []string{"/en/unknown"})

	families, err := rec.Gatherer().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "console_outcomes_total")
	assert.Contains(t, names, "console_stage_duration_seconds")
	assert.FileExists(t, path)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		name string
		want internal.Kind
	}{
		{name: "nil", err: nil, want: internal.OutcomeOK},
		{name: "pool config", err: &db.PoolConfigError{Role: "admin", Err: db.ErrMissingRoleConfig}, want: internal.OutcomeStorageFailure},
		{name: "pool lookup", err: &db.PoolLookupError{Role: "x"}, want: internal.OutcomeStorageFailure},
		{name: "not found", err: &router.RouteNotFoundError{Method: "GET", Path: "/x"}, want: internal.OutcomeNotFound},
		{name: "panic with storage error", err: &internal.PanicError{Value: &db.PoolLookupError{Role: "x"}}, want: internal.OutcomeStorageFailure},
		{name: "panic", err: &internal.PanicError{Value: 42}, want: internal.OutcomeCritical},
		{name: "config", err: &internal.ConfigError{Err: config.ErrMissingLanguage}, want: internal.OutcomeCritical},
		{name: "other", err: errors.New("x"), want: internal.OutcomeCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, internal.Classify(tt.err))
		})
	}
}

func TestStageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "init", internal.StageInit.String())
	assert.Equal(t, "emitted", internal.StageEmitted.String())
	assert.Equal(t, "unknown", internal.Stage(99).String())
	assert.Less(t, internal.StagePoolReady, internal.StageRouterReady)
}
