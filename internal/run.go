package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/dmitrymomot/console/pkg/account"
	"github.com/dmitrymomot/console/pkg/cache"
	"github.com/dmitrymomot/console/pkg/config"
	"github.com/dmitrymomot/console/pkg/db"
	"github.com/dmitrymomot/console/pkg/dispatch"
	"github.com/dmitrymomot/console/pkg/health"
	"github.com/dmitrymomot/console/pkg/i18n"
	"github.com/dmitrymomot/console/pkg/logger"
	"github.com/dmitrymomot/console/pkg/message"
	"github.com/dmitrymomot/console/pkg/metrics"
	"github.com/dmitrymomot/console/pkg/module"
	"github.com/dmitrymomot/console/pkg/redis"
	"github.com/dmitrymomot/console/pkg/router"
	"github.com/dmitrymomot/console/pkg/session"
	"github.com/dmitrymomot/console/pkg/settings"
	"github.com/dmitrymomot/console/pkg/view"
)

// DefaultStackSize bounds the stack captured for recovered panics.
const DefaultStackSize = 4096

// run is the state of one bootstrap. Fields are filled stage by stage.
type run struct {
	started  time.Time
	err      error
	app      *App
	log      *slog.Logger
	cfg      *config.Config
	req      *message.Request
	resp     *message.Response
	view     *view.View
	pool     *db.Pool
	caches   *cache.Pool
	router   *router.Router
	modules  *module.Manager
	metrics  *metrics.Recorder
	env      *module.Env
	errLine  string
	match    router.Match
	uri      message.URIContext
	args     []string
	closers  []func() error
	stage    Stage
	attempt  Stage
	errStage Stage
}

type step struct {
	fn    func(r *run, ctx context.Context) error
	stage Stage
}

// exec walks the stages up to Dispatched. Rendering and emission happen in
// finish, on every path.
func (r *run) exec(ctx context.Context) {
	steps := []step{
		{stage: StageInit, fn: (*run).initialize},
		{stage: StageRequestBuilt, fn: (*run).buildRequest},
		{stage: StageResponseBuilt, fn: (*run).buildResponse},
		{stage: StagePoolReady, fn: (*run).openPool},
		{stage: StageRouterReady, fn: (*run).loadRouter},
		{stage: StageModulesInitialized, fn: (*run).initModules},
		{stage: StageRouted, fn: (*run).route},
		{stage: StageDispatched, fn: (*run).dispatch},
	}

	for _, s := range steps {
		start := time.Now()
		r.attempt = s.stage
		if err := s.fn(r, ctx); err != nil {
			r.fail(err, funcLine(s.fn))
			return
		}
		r.metrics.ObserveStage(s.stage.String(), time.Since(start))
		r.stage = s.stage
	}
}

// fail records the first failure only, together with the stage that was
// being attempted when it happened.
func (r *run) fail(err error, line string) {
	if r.err != nil || err == nil {
		return
	}
	r.err = err
	r.errStage = r.attempt
	r.errLine = line
	var pe *PanicError
	if errors.As(err, &pe) && pe.Line != "" {
		r.errLine = pe.Line
	}
}

func (r *run) initialize(_ context.Context) error {
	cfg, err := r.app.loadConfig()
	if err != nil {
		return &ConfigError{Err: err}
	}
	if err := config.Validate(cfg); err != nil {
		return &ConfigError{Err: err}
	}
	r.cfg = cfg

	if r.metrics == nil && cfg.Metrics.File != "" {
		r.metrics = metrics.New(metrics.WithTextfile(cfg.Metrics.File))
	}

	if r.app.noFileLogger {
		r.log = slog.New(logger.NewContextHandler(r.app.logger.Handler(), RequestIDExtractor()))
		return nil
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return &ConfigError{Err: err}
	}
	log, closeLog, err := logger.NewFile(cfg.Log.File.Path,
		logger.WithLevel(level),
		logger.WithSentry(cfg.Log.Sentry),
		logger.WithExtractors(RequestIDExtractor()),
	)
	r.log = log
	r.closers = append(r.closers, closeLog)
	if err != nil {
		r.log.Warn("log file unavailable, writing to stderr",
			slog.String("path", cfg.Log.File.Path),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (r *run) buildRequest(_ context.Context) error {
	method := r.app.method
	if method == "" {
		method = r.cfg.App.Method
	}
	r.req, r.uri = message.BuildRequest(r.args, r.cfg.App.Path, r.cfg.DefaultLanguage(), message.WithMethod(method))
	r.uri = r.uri.WithQuery("/lang", r.req.Language())
	return nil
}

func (r *run) buildResponse(_ context.Context) error {
	r.resp = message.BuildResponse(r.req, r.cfg.Language)
	r.view = view.New(view.IndexTemplate, r.resp, view.WithRegistry(r.app.views))
	r.resp.Set(message.ContentKey, r.view)
	return nil
}

func (r *run) openPool(ctx context.Context) error {
	r.pool = db.NewPool(db.WithDialer(r.app.dialer))
	r.closers = append(r.closers, func() error { r.pool.Close(); return nil })

	if err := r.pool.CreateRoles(ctx, r.cfg.DB.Core.Masters); err != nil {
		return err
	}
	r.pool.Seal()

	checks := make(health.Checks)
	for name, fn := range r.pool.Healthchecks() {
		checks[name] = fn
	}
	for name, fn := range r.app.checks {
		checks[name] = fn
	}

	r.caches = cache.NewPool()
	r.closers = append(r.closers, r.caches.Close)

	var c cache.Cache[string] = cache.NewMemory[string](cache.WithDefaultTTL(r.cfg.Cache.TTL))
	if r.cfg.Cache.Redis.URL != "" {
		client, err := redis.Open(ctx, r.cfg.Cache.Redis)
		if err != nil {
			return err
		}
		c = cache.NewRedis[string](client, nil,
			cache.WithPrefix("console"),
			cache.WithRedisDefaultTTL(r.cfg.Cache.TTL),
		)
		checks["redis"] = redis.Healthcheck(client)
	}
	if err := r.caches.Create(cache.DefaultName, c); err != nil {
		return err
	}

	conn, err := r.pool.Get()
	if err != nil {
		return err
	}
	store, err := settings.New(conn, c, settings.WithTTL(r.cfg.Cache.TTL))
	if err != nil {
		return err
	}

	accounts, err := account.New(session.NewConsole())
	if err != nil {
		return err
	}

	r.env = &module.Env{
		Logger:   r.log,
		Pool:     r.pool,
		Cache:    r.caches,
		Settings: store,
		Accounts: accounts,
		Checks:   checks,
		URI:      r.uri,
	}
	return nil
}

func (r *run) loadRouter(_ context.Context) error {
	var err error
	if len(r.app.rules) > 0 {
		r.router, err = router.New(r.app.rules)
	} else {
		r.router, err = router.LoadFile(r.cfg.App.Routes)
	}
	return err
}

func (r *run) initModules(ctx context.Context) error {
	manifest := r.cfg.Modules
	if path := r.cfg.App.Manifest; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %w", module.ErrManifest, err)
		}
		defer f.Close()
		if manifest, err = module.LoadManifest(f); err != nil {
			return err
		}
	}

	r.modules = module.NewManager(manifest, module.WithLogger(r.log))
	if err := r.modules.Register(r.app.modules...); err != nil {
		return err
	}
	active, err := r.modules.ActiveModules()
	if err != nil {
		return err
	}

	opts := []i18n.Option{
		i18n.WithDefaultLanguage(r.cfg.DefaultLanguage()),
		i18n.WithLanguages(r.cfg.Language...),
		i18n.WithMissingKeyHandler(func(lang, namespace, key string) {
			r.log.Debug("missing translation",
				slog.String("lang", lang),
				slog.String("namespace", namespace),
				slog.String("key", key),
			)
		}),
	}
	for _, fsys := range r.modules.Translations(active) {
		opts = append(opts, i18n.WithYAMLDir(fsys))
	}
	tr, err := i18n.New(opts...)
	if err != nil {
		return err
	}
	r.env.I18n = tr
	r.view.SetTranslator(i18n.NewTranslator(tr, r.resp.Localization().Language()))

	return r.modules.Init(ctx, r.env, active)
}

func (r *run) route(_ context.Context) error {
	var err error
	r.match, err = r.router.Route(r.req)
	return err
}

func (r *run) dispatch(ctx context.Context) error {
	_, err := dispatch.New(r.modules, r.env).Dispatch(ctx, r.match, r.req, r.resp)
	return err
}

// finish renders and emits the body on every path, then releases resources.
func (r *run) finish(ctx context.Context) Outcome {
	kind := Classify(r.err)
	if r.resp == nil {
		r.resp = message.DefaultResponse()
	}

	if kind != OutcomeOK {
		r.renderFailure(ctx, kind)
	}

	body, err := r.render(ctx)
	if err != nil && kind == OutcomeOK {
		r.attempt = StageRendered
		r.fail(err, "")
		kind = OutcomeCritical
		r.renderFailure(ctx, kind)
		body, _ = r.render(ctx)
	}
	r.stage = max(r.stage, StageRendered)

	if err := r.resp.Emit(r.app.output, body); err != nil {
		r.log.Error("failed to emit response", slog.String("error", err.Error()))
	} else {
		r.stage = StageEmitted
	}

	out := Outcome{
		Kind:     kind,
		Stage:    r.stage,
		Body:     body,
		Err:      r.err,
		ExitCode: kind.ExitCode(),
		Language: r.resp.Localization().Language(),
	}
	if r.req != nil {
		out.RequestID = r.req.ID()
	}
	if r.match.Target.Module != "" {
		out.Target = r.match.Target.String()
	}

	r.metrics.Outcome(kind.String(), time.Since(r.started))
	if err := r.metrics.Flush(); err != nil {
		r.log.Warn("failed to write metrics", slog.String("error", err.Error()))
	}
	r.close()
	return out
}

// renderFailure replaces the content with the failure payload. Storage and
// critical failures produce exactly one critical log entry.
func (r *run) renderFailure(ctx context.Context, kind Kind) {
	path := ""
	if r.req != nil {
		path = r.req.URI().Path()
	}
	text := payload(kind, r.err, path)

	if kind.Fatal() {
		logger.Critical(ctx, r.log, "bootstrap failed",
			slog.String("message", r.err.Error()),
			slog.String("stage", r.errStage.String()),
			slog.String("line", r.errLine),
			slog.String("outcome", kind.String()),
		)
	} else {
		r.log.InfoContext(ctx, "request not served",
			slog.String("outcome", kind.String()),
			slog.String("error", r.err.Error()),
		)
	}

	r.resp.Set(view.MessageKey, text)
	v := r.view
	if v == nil {
		v = view.New(view.ErrorTemplate, r.resp, view.WithRegistry(r.app.views))
	}
	v.SetTemplate(view.ErrorTemplate)
	r.resp.Set(message.ContentKey, v)
	r.view = v
}

// render produces the body. A failing renderer falls back to the raw
// failure message so the body is never empty on error.
func (r *run) render(ctx context.Context) (body string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Line: panicLine(), Stack: stack()}
		}
		if err != nil {
			if msg, ok := r.resp.Get(view.MessageKey).(string); ok {
				body = msg
			}
		}
	}()
	return r.resp.Body(ctx)
}

func (r *run) close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			r.log.Warn("failed to release resource", slog.String("error", err.Error()))
		}
	}
	r.closers = nil
}

// funcLine returns file:line where a stage method is declared.
func funcLine(fn any) string {
	fnc := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if fnc == nil {
		return ""
	}
	file, line := fnc.FileLine(fnc.Entry())
	return fmt.Sprintf("%s:%d", file, line)
}

// panicLine returns file:line of the frame that panicked. It is called from a
// deferred function while the panic unwinds.
func panicLine() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	afterPanic := false
	for {
		f, more := frames.Next()
		if afterPanic && !strings.HasPrefix(f.Function, "runtime.") {
			return fmt.Sprintf("%s:%d", f.File, f.Line)
		}
		if f.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			return ""
		}
	}
}

func stack() []byte {
	buf := make([]byte, DefaultStackSize)
	return buf[:runtime.Stack(buf, false)]
}
