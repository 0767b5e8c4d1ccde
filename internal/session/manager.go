package session

import (
	"context"
	"sync"

	"tastybites-web/internal/backend"
	"tastybites-web/internal/domain"
)

// Backend is the slice of the backend client the session manager needs.
type Backend interface {
	CheckSession(ctx context.Context, cookie string) (domain.SessionState, error)
	Logout(ctx context.Context, cookie string) (backend.AuthResult, error)
}

// Manager is the single source of session truth for the process. Consumers
// read the shared state instead of each querying the backend on their own,
// and can subscribe to hear about transitions.
type Manager struct {
	mu      sync.RWMutex
	backend Backend
	states  map[string]domain.SessionState
	subs    []chan domain.SessionState
}

func NewManager(b Backend) *Manager {
	return &Manager{
		backend: b,
		states:  make(map[string]domain.SessionState),
	}
}

// Refresh asks the backend whether the credential is still valid and updates
// the shared state. A transport failure leaves the last known state alone.
func (m *Manager) Refresh(ctx context.Context, cookie string) (domain.SessionState, error) {
	state, err := m.backend.CheckSession(ctx, cookie)
	if err != nil {
		return domain.SessionState{}, err
	}

	m.setState(cookie, state)
	return state, nil
}

// Current returns the last state seen for the credential without touching
// the backend.
func (m *Manager) Current(cookie string) (domain.SessionState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[cookie]
	return state, ok
}

// Logout calls the backend logout endpoint and, on success, drops the
// cached state for the credential and notifies subscribers. Dropping the
// entry keeps the map from accumulating dead cookies.
func (m *Manager) Logout(ctx context.Context, cookie string) (backend.AuthResult, error) {
	result, err := m.backend.Logout(ctx, cookie)
	if err != nil {
		return backend.AuthResult{}, err
	}

	m.mu.Lock()
	prev, seen := m.states[cookie]
	delete(m.states, cookie)
	subs := m.subs
	m.mu.Unlock()

	if !seen || prev.Authenticated {
		m.notify(subs, domain.SessionState{})
	}
	return result, nil
}

// Subscribe returns a channel that receives every session transition.
// Notifications are dropped rather than blocked on a slow consumer.
func (m *Manager) Subscribe() <-chan domain.SessionState {
	ch := make(chan domain.SessionState, 8)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

func (m *Manager) setState(cookie string, state domain.SessionState) {
	m.mu.Lock()
	prev, seen := m.states[cookie]
	m.states[cookie] = state
	subs := m.subs
	m.mu.Unlock()

	if seen && prev == state {
		return
	}
	m.notify(subs, state)
}

func (m *Manager) notify(subs []chan domain.SessionState, state domain.SessionState) {
	for _, ch := range subs {
		select {
		case ch <- state:
		default:
		}
	}
}
