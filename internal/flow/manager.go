package flow

import (
	"context"
	"sync"
	"time"

	"go-interview-portal/internal/domain"
)

// Manager hands out one Controller per identifier. Only one client owns a
// given identifier's mutable state, so last-write-wins needs no locking
// beyond the controller's own.
type Manager struct {
	answers  domain.AnswerUsecase
	progress domain.ProgressUsecase
	window   time.Duration

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewManager(answers domain.AnswerUsecase, progress domain.ProgressUsecase, window time.Duration) *Manager {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Manager{
		answers:  answers,
		progress: progress,
		window:   window,
		sessions: make(map[string]*Controller),
	}
}

// Acquire returns the live controller for the identifier, creating one (and
// loading its saved state) on first use.
func (m *Manager) Acquire(ctx context.Context, id domain.Identifier) (*Controller, error) {
	m.mu.Lock()
	if c, ok := m.sessions[id.Key()]; ok {
		m.mu.Unlock()
		return c, nil
	}
	m.mu.Unlock()

	// Load outside the lock; a concurrent first request for the same
	// identifier just loads twice and the first one registered wins.
	c, err := NewController(ctx, id, m.answers, m.progress, WithDebounceWindow(m.window))
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[id.Key()]; ok {
		return existing, nil
	}
	m.sessions[id.Key()] = c
	return c, nil
}

// Release tears down the identifier's session, flushing pending writes.
func (m *Manager) Release(id domain.Identifier) {
	m.mu.Lock()
	c, ok := m.sessions[id.Key()]
	if ok {
		delete(m.sessions, id.Key())
	}
	m.mu.Unlock()

	if ok {
		c.Close()
	}
}

// CloseAll flushes and drops every session. Called on server shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Controller)
	m.mu.Unlock()

	for _, c := range sessions {
		c.Close()
	}
}
