// Package session keys browser visitors to their server-side state. Each
// session owns exactly one cart store and one order workflow; sessions are
// created lazily on first touch and evicted after a period of inactivity.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/menucart/internal/domain/cart"
	"github.com/xenking/menucart/internal/domain/order"
)

// Session is one visitor's server-side state.
type Session struct {
	ID       string
	Store    *cart.Store
	Workflow *order.Workflow

	lastSeen time.Time
}

// Builder assembles a workflow around a freshly created cart store. The
// manager owns store construction so it can hand the same store to both the
// session and the workflow.
type Builder func(*cart.Store) *order.Workflow

// Manager tracks live sessions and evicts idle ones.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	ttl   time.Duration
	build Builder
	now   func() time.Time
	lg    *zap.Logger
}

// NewManager builds a manager evicting sessions idle longer than ttl.
func NewManager(ttl time.Duration, build Builder, lg *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		build:    build,
		now:      time.Now,
		lg:       lg,
	}
}

// Get returns the session with the given ID, refreshing its idle timer. An
// unknown or empty ID yields a brand-new session under a fresh UUID; callers
// must read back s.ID to learn the assigned identity.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = m.now()
		return s
	}

	store := cart.NewStore()
	s := &Session{
		ID:       uuid.New().String(),
		Store:    store,
		Workflow: m.build(store),
		lastSeen: m.now(),
	}
	m.sessions[s.ID] = s
	m.lg.Debug("session created", zap.String("session_id", s.ID))
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run sweeps idle sessions until ctx is done, then tears every session down.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.sweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			return nil
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) sweepInterval() time.Duration {
	iv := m.ttl / 4
	if iv < time.Second {
		iv = time.Second
	}
	return iv
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			s.Workflow.Close()
			delete(m.sessions, id)
			m.lg.Debug("session evicted", zap.String("session_id", id))
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		s.Workflow.Close()
		delete(m.sessions, id)
	}
}
