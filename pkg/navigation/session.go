package navigation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fuelmate/go-nav/internal/log"
	"github.com/fuelmate/go-nav/pkg/camera"
	"github.com/fuelmate/go-nav/pkg/heading"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/progress"
	"github.com/fuelmate/go-nav/pkg/route"
)

// ErrAlreadyStarted indicates Start was called twice on one session.
var ErrAlreadyStarted = errors.New("navigation: session already started")

// Session wires the progress tracker, heading estimator, and camera
// controller to one location subscription. Create one per confirmed
// destination; it is dead after Stop or arrival.
type Session struct {
	ID string

	provider location.Provider
	cam      *camera.Controller

	// OnState receives every state snapshot. OnArrived fires once when
	// the destination is reached, after the final snapshot. Both are
	// called from the location provider's goroutine; set before Start.
	OnState   func(State)
	OnArrived func()

	mu      sync.Mutex
	alive   bool
	started bool
	rt      *route.Route
	tracker *progress.Tracker
	sub     location.Subscription

	// last known good heading, held across samples where neither the
	// sensor nor the route yields a usable direction
	lastHeading float64
	hasHeading  bool
}

// NewSession creates a session over a fetched route. The route and its
// steps become owned by the session and are released on Stop.
func NewSession(rt *route.Route, provider location.Provider, cam *camera.Controller) *Session {
	return &Session{
		ID:       uuid.NewString(),
		provider: provider,
		cam:      cam,
		rt:       rt,
		tracker:  progress.NewTracker(progress.DefaultConfig(), rt.Steps, rt.Destination),
	}
}

// Start acquires the location subscription and begins navigating.
// The session stays logically NotStarted until the first fix arrives.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	sub, err := s.provider.Subscribe(s.handleSample)
	if err != nil {
		return fmt.Errorf("navigation: acquire location stream: %w", err)
	}

	s.sub = sub
	s.started = true
	s.alive = true
	s.tracker.Start()
	s.cam.StartNavigation()

	log.Info("navigation session started",
		"session", s.ID,
		"steps", len(s.rt.Steps),
		"distance_m", s.rt.DistanceMeters)
	return nil
}

// Stop tears the session down synchronously: the location subscription
// is cancelled, the camera's pending idle timer is cleared, and the
// route references are dropped. Any sample or timer callback that
// races the teardown is a guaranteed no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.teardownLocked()
	s.tracker.Stop()
	s.mu.Unlock()

	log.Info("navigation session stopped", "session", s.ID)
}

// teardownLocked clears the liveness flag and releases owned
// resources. Caller holds s.mu.
func (s *Session) teardownLocked() {
	s.alive = false
	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
	s.cam.StopNavigation()
	s.rt = nil
}

// handleSample is the single state-update entry point for position
// samples. Samples are processed in arrival order; a gesture that
// lands between two samples takes effect before the next one because
// the camera controller checks its mode fresh per call.
func (s *Session) handleSample(sample location.Sample) {
	s.mu.Lock()

	if !s.alive {
		s.mu.Unlock()
		return
	}

	snap := s.tracker.Update(sample)

	sensor, hasSensor := sample.Heading()
	if deg, ok := heading.Estimate(sample.Coordinate, s.rt.Geometry, sensor, hasSensor); ok {
		s.lastHeading = deg
		s.hasHeading = true
	}
	// lastHeading is zero until the first usable direction, so the
	// earliest frames chase north-up rather than skipping the camera.
	s.cam.OnPositionUpdate(sample.Coordinate, s.lastHeading)

	state := State{
		SessionID:            s.ID,
		CurrentStep:          s.tracker.CurrentStep(),
		NextStep:             s.tracker.NextStep(),
		DistanceToNextTurnM:  snap.DistanceToNextTurnM,
		TotalDistanceRemainM: snap.TotalDistanceRemainM,
		TotalTimeRemainS:     snap.TotalTimeRemainS,
		Arrived:              snap.Arrived,
	}

	arrived := snap.Arrived
	if arrived {
		// Arrival terminates the session; release resources before
		// surfacing the final snapshot.
		s.teardownLocked()
	}

	onState := s.OnState
	onArrived := s.OnArrived
	s.mu.Unlock()

	if onState != nil {
		onState(state)
	}
	if arrived {
		log.Info("destination reached", "session", s.ID)
		if onArrived != nil {
			onArrived()
		}
	}
}

// Route returns the session's route while it is alive, nil after
// teardown. The gateway uses it to render the polyline and marker.
func (s *Session) Route() *route.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt
}

// Active reports whether the session is still consuming samples.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}
