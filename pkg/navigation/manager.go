package navigation

import (
	"context"
	"fmt"
	"sync"

	"github.com/fuelmate/go-nav/internal/log"
	"github.com/fuelmate/go-nav/pkg/camera"
	"github.com/fuelmate/go-nav/pkg/geo"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/route"
)

// RouteFetcher fetches a route for a destination selection.
// *route.Client implements it; tests substitute a stub.
type RouteFetcher interface {
	Fetch(ctx context.Context, origin, destination geo.Coordinate) (*route.Route, error)
}

// Manager enforces the one-active-session rule and runs the route
// fetch that precedes every session. Starting a new navigation stops
// the previous one.
type Manager struct {
	fetcher  RouteFetcher
	provider location.Provider
	cam      *camera.Controller

	// OnState is installed on every session the manager starts.
	OnState func(State)

	mu      sync.Mutex
	current *Session
}

// NewManager creates a manager. All sessions it starts share the
// provider and camera controller.
func NewManager(fetcher RouteFetcher, provider location.Provider, cam *camera.Controller) *Manager {
	return &Manager{
		fetcher:  fetcher,
		provider: provider,
		cam:      cam,
	}
}

// Start fetches a route and begins navigating to destination. On any
// fetch or decode failure the caller hands off to external navigation
// via route.ExternalNavURL; nothing here retries.
func (m *Manager) Start(ctx context.Context, origin, destination geo.Coordinate) (*Session, error) {
	rt, err := m.fetcher.Fetch(ctx, origin, destination)
	if err != nil {
		log.Warn("route fetch failed, falling back to external navigation",
			"error", err, "fallback", route.ExternalNavURL(destination))
		return nil, fmt.Errorf("navigation: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Stop()
		m.current = nil
	}

	s := NewSession(rt, m.provider, m.cam)
	s.OnState = m.OnState
	s.OnArrived = func() { m.clear(s) }

	if err := s.Start(); err != nil {
		return nil, err
	}
	m.current = s
	return s, nil
}

// Stop ends the active session, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()

	if s != nil {
		s.Stop()
	}
}

// Current returns the active session, or nil.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// clear drops the session reference after arrival, unless a newer
// session already replaced it.
func (m *Manager) clear(s *Session) {
	m.mu.Lock()
	if m.current == s {
		m.current = nil
	}
	m.mu.Unlock()
}
