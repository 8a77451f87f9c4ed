package session

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session carries the identity and scratch values of one console invocation.
// It is never persisted: each process run starts a fresh session.
type Session struct {
	CreatedAt time.Time
	values    map[string]any
	userID    string
	ID        string
	mu        sync.RWMutex
}

// NewConsole creates an anonymous session with a random id.
func NewConsole() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		values:    make(map[string]any),
	}
}

// Authenticate binds the session to a user.
func (s *Session) Authenticate(userID string) error {
	if userID == "" {
		return ErrEmptyUserID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	return nil
}

// UserID returns the bound user, or "" for an anonymous session.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// IsAuthenticated returns true if the session has an associated user.
func (s *Session) IsAuthenticated() bool {
	return s.UserID() != ""
}

func (s *Session) SetValue(key string, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = val
}

func (s *Session) GetValue(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

func (s *Session) DeleteValue(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Values returns a copy of all session values.
func (s *Session) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
