// Package memstore provides an in-process session store for development and tests.
// Sessions are lost on restart and are not shared between replicas.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domainauth "github.com/memberhub/portal/internal/domain/auth"
	"github.com/memberhub/portal/internal/ports"
)

// SessionStore is a mutex-guarded map with the same expiry rules as the Redis store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
	now      func() time.Time
}

// NewSessionStore creates an empty store. A nil now defaults to time.Now.
func NewSessionStore(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		sessions: make(map[string]domainauth.Session),
		now:      now,
	}
}

var _ ports.SessionStore = (*SessionStore)(nil)

// Save rejects sessions without a future ExpiresAt, as the Redis store does.
func (m *SessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !m.now().Before(sess.ExpiresAt) {
		return errors.New("session is expired")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = cloneSession(sess)
	return nil
}

func (m *SessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	if sess.Expired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return cloneSession(sess), nil
}

func (m *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// List returns live sessions ordered by ID.
func (m *SessionStore) List(_ context.Context) ([]domainauth.Session, error) {
	now := m.now()
	m.mu.RLock()
	out := make([]domainauth.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if !s.Expired(now) {
			out = append(out, cloneSession(s))
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Sweep removes every session expired at now and returns how many were removed.
func (m *SessionStore) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// cloneSession copies the User pointer so callers cannot mutate stored state.
func cloneSession(s domainauth.Session) domainauth.Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
