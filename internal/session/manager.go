package session

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// Session is the in-memory authenticated identity. Zero value means no
// session. Subject is present iff the token is present and decodable, or the
// caller supplied a fallback identity at establish time.
type Session struct {
	Token     string
	Subject   string
	ExpiresAt time.Time
}

// Active reports whether a token is held.
func (s Session) Active() bool { return s.Token != "" }

// Manager owns the session lifecycle. All other components read the session
// through it and never mutate it directly.
type Manager struct {
	store Store

	mu      sync.RWMutex
	session Session
}

// NewManager builds a Manager backed by the provided store.
func NewManager(store Store) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session store is nil")
	}
	return &Manager{store: store}, nil
}

// Restore loads a previously persisted token. A token that fails to decode is
// removed from persistence and the session stays absent; corrupted state heals
// silently rather than surfacing an error at startup.
func (m *Manager) Restore() (Session, error) {
	state, err := m.store.Load()
	if err != nil {
		return Session{}, err
	}

	token := strings.TrimSpace(state.Token)
	if token == "" {
		m.set(Session{})
		return Session{}, nil
	}

	claims, ok := DecodeClaims(token)
	if !ok {
		_ = m.store.Save(State{})
		m.set(Session{})
		return Session{}, nil
	}

	sess := Session{Token: token, Subject: claims.Subject, ExpiresAt: claims.Expiry()}
	m.set(sess)
	return sess, nil
}

// Establish accepts a freshly issued token, derives the subject from its
// claims, and persists it. When the token payload carries no usable subject
// the provided fallback identity is used so a server-confirmed login never
// yields an empty identity.
func (m *Manager) Establish(token, fallbackSubject string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, errors.New("token is empty")
	}

	sess := Session{Token: token, Subject: strings.TrimSpace(fallbackSubject)}
	if claims, ok := DecodeClaims(token); ok {
		sess.Subject = claims.Subject
		sess.ExpiresAt = claims.Expiry()
	}

	if err := m.store.Save(State{Token: token}); err != nil {
		return Session{}, err
	}
	m.set(sess)
	return sess, nil
}

// Clear removes the in-memory session and the persisted token. Safe to call
// when no session exists.
func (m *Manager) Clear() error {
	m.set(Session{})
	return m.store.Save(State{})
}

// AuthHeader returns the Authorization header value for the current token.
// The second return is false when unauthenticated.
func (m *Manager) AuthHeader() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session.Token == "" {
		return "", false
	}
	return "Bearer " + m.session.Token, true
}

// Current returns a copy of the session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// Token returns the raw bearer token, empty when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Token
}

// Subject returns the identity bound to the current session.
func (m *Manager) Subject() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Subject
}

// Authenticated reports whether a session is established.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Active()
}

func (m *Manager) set(sess Session) {
	m.mu.Lock()
	m.session = sess
	m.mu.Unlock()
}
