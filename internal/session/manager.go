package session

import (
	"context"
	"sync"
	"time"

	"github.com/example/watchhaven/internal/domain/cart"
	"github.com/example/watchhaven/internal/domain/view"
	"github.com/example/watchhaven/internal/infrastructure/eventbus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Session is the state one visitor owns: a cart and a view router
type Session struct {
	ID     string
	Cart   *cart.Cart
	Router *view.Router

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Manager creates sessions on first use and hands out the same instance
// for the same id afterwards
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	emitter  eventbus.Emitter
	now      func() time.Time
}

func NewManager(emitter eventbus.Emitter) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		emitter:  emitter,
		now:      time.Now,
	}
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.New().String()
}

// Get returns the session for id, creating it if needed
func (m *Manager) Get(id string) *Session {
	now := m.now()

	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			ID:     id,
			Cart:   cart.New(cart.GetCartID(id), m.emitter),
			Router: view.NewRouter(),
		}
		m.sessions[id] = s
	}
	m.mu.Unlock()

	s.touch(now)
	return s
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many were dropped
func (m *Manager) Sweep(maxIdle time.Duration) int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	dropped := 0
	for id, s := range m.sessions {
		if s.idleSince(now) > maxIdle {
			delete(m.sessions, id)
			dropped++
		}
	}
	return dropped
}

// RunSweeper sweeps every interval until ctx is done
func (m *Manager) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(maxIdle); n > 0 {
				log.WithField("dropped", n).Info("[Session] Swept idle sessions")
			}
		}
	}
}
