// Package account keeps the accounts known to a console invocation.
package account

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmitrymomot/console/pkg/session"
)

var (
	ErrNotFound  = errors.New("account: not found")
	ErrEmptyID   = errors.New("account: empty id")
	ErrDuplicate = errors.New("account: already registered")
)

// Account is a console user.
type Account struct {
	ID       string
	Login    string
	Name     string
	Language string
}

// Manager registers accounts and resolves the one bound to the session.
type Manager struct {
	sess     *session.Session
	accounts map[string]Account
	mu       sync.RWMutex
}

// New creates a manager over sess.
func New(sess *session.Session) (*Manager, error) {
	if sess == nil {
		return nil, session.ErrNilSession
	}
	return &Manager{sess: sess, accounts: make(map[string]Account)}, nil
}

// Add registers a.
func (m *Manager) Add(a Account) error {
	if a.ID == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, a.ID)
	}
	m.accounts[a.ID] = a
	return nil
}

// Get returns the account with id.
func (m *Manager) Get(id string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a, nil
}

// Current returns the account bound to the session.
func (m *Manager) Current() (Account, bool) {
	id := m.sess.UserID()
	if id == "" {
		return Account{}, false
	}
	a, err := m.Get(id)
	return a, err == nil
}

// Session returns the underlying session.
func (m *Manager) Session() *session.Session { return m.sess }

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

// IDs returns registered ids in ascending order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.accounts))
}
