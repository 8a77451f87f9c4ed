package view

import (
	"errors"
	"fmt"
	"sync"
)

var ErrTemplateNotFound = errors.New("view: template not found")

// Registry maps template names to templates.
type Registry struct {
	templates map[string]Template
	mu        sync.RWMutex
}

// NewRegistry creates a registry holding the console templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}
	r.Register(IndexTemplate, Index)
	r.Register(ErrorTemplate, Error)
	return r
}

// Register adds or replaces a template.
func (r *Registry) Register(name string, tpl Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[name] = tpl
}

// Lookup returns the template registered under name.
func (r *Registry) Lookup(name string) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tpl, nil
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the shared registry.
func Default() *Registry {
	defaultOnce.Do(func() { defaultRegistry = NewRegistry() })
	return defaultRegistry
}
