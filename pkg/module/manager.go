package module

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
)

// Manager discovers active modules and initializes them once, in order.
type Manager struct {
	registry map[string]Module
	actions  map[string]map[string]Action
	log      *slog.Logger
	initErr  error
	manifest []Descriptor
	order    []string
	once     sync.Once
	mu       sync.RWMutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for initialization messages.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a manager for the given manifest.
// Modules absent from the manifest are never activated.
func NewManager(manifest []Descriptor, opts ...ManagerOption) *Manager {
	m := &Manager{
		registry: make(map[string]Module),
		actions:  make(map[string]map[string]Action),
		log:      slog.New(slog.DiscardHandler),
		manifest: manifest,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register makes mods available for activation.
func (m *Manager) Register(mods ...Module) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mod := range mods {
		id := mod.ID()
		if id == "" {
			return ErrEmptyID
		}
		if _, ok := m.registry[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateModule, id)
		}
		m.registry[id] = mod
	}
	return nil
}

// ActiveModules returns the active manifest entries sorted by order, then id.
// An active entry without a registered module is an error.
func (m *Manager) ActiveModules() ([]Descriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{}, len(m.manifest))
	active := make([]Descriptor, 0, len(m.manifest))
	for _, d := range m.manifest {
		if d.ID == "" {
			return nil, ErrEmptyID
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDescriptor, d.ID)
		}
		seen[d.ID] = struct{}{}

		if !d.Active {
			continue
		}
		if _, ok := m.registry[d.ID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModule, d.ID)
		}
		active = append(active, d)
	}

	sortDescriptors(active)
	return active, nil
}

// Translations returns the translation trees of the given modules, in order.
func (m *Manager) Translations(descriptors []Descriptor) []fs.FS {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []fs.FS
	for _, d := range descriptors {
		if t, ok := m.registry[d.ID].(Translator); ok {
			if fsys := t.Translations(); fsys != nil {
				out = append(out, fsys)
			}
		}
	}
	return out
}

// Init initializes descriptors in sequence and collects their actions.
// It runs once; later calls return the first result. The first failing
// module aborts initialization. Panics propagate to the caller and leave
// the manager failed with ErrInitAborted.
func (m *Manager) Init(ctx context.Context, env *Env, descriptors []Descriptor) error {
	m.once.Do(func() {
		m.initErr = ErrInitAborted
		m.initErr = m.initAll(ctx, env, descriptors)
	})
	return m.initErr
}

func (m *Manager) initAll(ctx context.Context, env *Env, descriptors []Descriptor) error {
	for _, d := range descriptors {
		m.mu.RLock()
		mod, ok := m.registry[d.ID]
		m.mu.RUnlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownModule, d.ID)
		}

		if err := mod.Init(ctx, env); err != nil {
			return &InitError{Module: d.ID, Err: err}
		}

		reg := &registrar{module: d.ID, actions: make(map[string]Action)}
		mod.Actions(reg)
		if err := errors.Join(reg.errs...); err != nil {
			return &InitError{Module: d.ID, Err: err}
		}

		m.mu.Lock()
		m.actions[d.ID] = reg.actions
		m.order = append(m.order, d.ID)
		m.mu.Unlock()

		m.log.DebugContext(ctx, "module initialized",
			slog.String("module", d.ID),
			slog.Int("order", d.Order),
			slog.Int("actions", len(reg.actions)),
		)
	}
	return nil
}

// Initialized returns the ids of initialized modules in init order.
func (m *Manager) Initialized() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// Action resolves an action of an initialized module.
func (m *Manager) Action(moduleID, action string) (Action, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions, ok := m.actions[moduleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleInactive, moduleID)
	}
	fn, ok := actions[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s:%s", ErrActionNotFound, moduleID, action)
	}
	return fn, nil
}

type registrar struct {
	actions map[string]Action
	module  string
	errs    []error
}

func (r *registrar) Action(name string, fn Action) {
	if name == "" || fn == nil {
		r.errs = append(r.errs, fmt.Errorf("%w: %s:%q", ErrInvalidAction, r.module, name))
		return
	}
	if _, ok := r.actions[name]; ok {
		r.errs = append(r.errs, fmt.Errorf("%w: %s:%s", ErrDuplicateAction, r.module, name))
		return
	}
	r.actions[name] = fn
}
