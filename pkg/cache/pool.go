package cache

import (
	"errors"
	"fmt"
	"sync"
)

// DefaultName is the cache returned by Pool.Get without arguments.
const DefaultName = "default"

// Pool holds named string caches shared by the console and its modules.
type Pool struct {
	caches map[string]Cache[string]
	mu     sync.RWMutex
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{caches: make(map[string]Cache[string])}
}

// Create registers c under name.
func (p *Pool) Create(name string, c Cache[string]) error {
	if c == nil {
		return ErrNilCache
	}
	if name == "" {
		name = DefaultName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.caches[name]; ok {
		return fmt.Errorf("%w: %q", ErrCacheExists, name)
	}
	p.caches[name] = c
	return nil
}

// Get returns the named cache, or the default one.
func (p *Pool) Get(name ...string) (Cache[string], error) {
	key := DefaultName
	if len(name) > 0 && name[0] != "" {
		key = name[0]
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	c, ok := p.caches[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCache, key)
	}
	return c, nil
}

// Close closes every cache.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, c := range p.caches {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
