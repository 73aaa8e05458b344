package memory

// Package memory provides an in-process session store used in development
// mode (no Redis configured) and in tests.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

// SessionStore is a map-backed session store. It is safe for concurrent use
// by the HTTP server's handler goroutines. Entries live until cleared or the
// process exits.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domainauth.Session)}
}

// Save replaces the stored session for id.
func (s *SessionStore) Save(_ context.Context, id string, sess domainauth.Session) error {
	if id == "" {
		return errors.New("session ID cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return nil
}

// Read returns the stored session, or the zero session when absent.
func (s *SessionStore) Read(_ context.Context, id string) domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// Clear removes the session for id; absent entries are a no-op.
func (s *SessionStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions. Used by tests to assert store
// side effects.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
