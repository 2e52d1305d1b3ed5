// Package progress tracks advancement along an active route: current
// step, distance to the next maneuver, remaining distance and time, and
// arrival. It is a single-writer state machine driven by position
// samples; only the owning navigation session calls into it.
package progress

import (
	"github.com/fuelmate/go-nav/pkg/geo"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/route"
)

// State is the tracker lifecycle state.
type State string

const (
	StateNotStarted State = "not_started"
	StateActive     State = "active"
	StateArrived    State = "arrived" // terminal
	StateStopped    State = "stopped" // terminal, user-cancelled
)

// Config holds the tracker thresholds.
type Config struct {
	// ArrivalThresholdM ends navigation when the destination is closer
	// than this.
	ArrivalThresholdM float64

	// StepAdvanceThresholdM advances to the next step when the
	// remaining distance within the current one drops below this.
	StepAdvanceThresholdM float64

	// FallbackSpeedMS estimates remaining time when the sample carries
	// no usable speed. 13.9 m/s is ~50 km/h urban cruising.
	FallbackSpeedMS float64
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		ArrivalThresholdM:     50,
		StepAdvanceThresholdM: 30,
		FallbackSpeedMS:       13.9,
	}
}

// Snapshot is the tracker's externally visible state. CurrentStepIndex
// is -1 while the route has no step list.
type Snapshot struct {
	State                State   `json:"state"`
	CurrentStepIndex     int     `json:"current_step_index"`
	DistanceToNextTurnM  float64 `json:"distance_to_next_turn_m"`
	TotalDistanceRemainM float64 `json:"total_distance_remaining_m"`
	TotalTimeRemainS     float64 `json:"total_time_remaining_s"`
	Arrived              bool    `json:"arrived"`
}

// Tracker is the progress state machine. Not safe for concurrent use;
// the session serializes all calls.
type Tracker struct {
	cfg         Config
	steps       []route.Step
	destination geo.Coordinate

	// cumulative[i] is the planned distance from the route start
	// through the end of step i.
	cumulative   []float64
	plannedTotal float64

	state     State
	stepIndex int
	snap      Snapshot
}

// NewTracker creates a tracker for one route. steps may be empty (the
// routing service returned no turn list); distance and time still
// update, but no step ever advances.
func NewTracker(cfg Config, steps []route.Step, destination geo.Coordinate) *Tracker {
	t := &Tracker{
		cfg:         cfg,
		steps:       steps,
		destination: destination,
		state:       StateNotStarted,
		stepIndex:   -1,
	}

	total := 0.0
	for _, s := range steps {
		total += s.DistanceMeters
		t.cumulative = append(t.cumulative, total)
	}
	t.plannedTotal = total

	t.snap = Snapshot{State: StateNotStarted, CurrentStepIndex: -1}
	return t
}

// Start transitions NotStarted → Active and seeds the remaining
// totals from the planned step list.
func (t *Tracker) Start() {
	if t.state != StateNotStarted {
		return
	}
	t.state = StateActive

	var totalTime float64
	for _, s := range t.steps {
		totalTime += s.DurationSeconds
	}

	t.snap = Snapshot{
		State:                StateActive,
		CurrentStepIndex:     -1,
		TotalDistanceRemainM: t.plannedTotal,
		TotalTimeRemainS:     totalTime,
	}
	if len(t.steps) > 0 {
		t.stepIndex = 0
		t.snap.CurrentStepIndex = 0
		t.snap.DistanceToNextTurnM = t.steps[0].DistanceMeters
	}
}

// Stop transitions Active → Stopped. Terminal.
func (t *Tracker) Stop() {
	if t.state == StateActive || t.state == StateNotStarted {
		t.state = StateStopped
		t.snap.State = StateStopped
	}
}

// Update consumes one position sample. Returns the resulting snapshot;
// once Arrived or Stopped, updates are no-ops.
func (t *Tracker) Update(sample location.Sample) Snapshot {
	if t.state != StateActive {
		return t.snap
	}

	distToDest := geo.Distance(sample.Coordinate, t.destination)

	if distToDest < t.cfg.ArrivalThresholdM {
		t.state = StateArrived
		t.snap.State = StateArrived
		t.snap.Arrived = true
		t.snap.TotalDistanceRemainM = 0
		t.snap.TotalTimeRemainS = 0
		t.snap.DistanceToNextTurnM = 0
		return t.snap
	}

	// Replace, never decrement: remaining distance comes from a fresh
	// measurement to the destination, not accumulated step math.
	t.snap.TotalDistanceRemainM = distToDest

	speed := t.cfg.FallbackSpeedMS
	if v, ok := sample.Speed(); ok && v > 0 {
		speed = v
	}
	t.snap.TotalTimeRemainS = distToDest / speed

	t.advanceStep(distToDest)
	return t.snap
}

// advanceStep runs the step heuristic: progress is proxied by total
// planned distance minus live distance-to-destination, compared against
// the cumulative planned distance through the current step.
func (t *Tracker) advanceStep(distToDest float64) {
	if t.stepIndex < 0 || t.stepIndex >= len(t.steps) {
		return
	}

	covered := t.plannedTotal - distToDest
	if covered < 0 {
		covered = 0
	}

	remainingInStep := t.cumulative[t.stepIndex] - covered

	if remainingInStep < t.cfg.StepAdvanceThresholdM && t.stepIndex+1 < len(t.steps) {
		t.stepIndex++
		t.snap.CurrentStepIndex = t.stepIndex
		t.snap.DistanceToNextTurnM = t.steps[t.stepIndex].DistanceMeters
		return
	}

	stepDist := t.steps[t.stepIndex].DistanceMeters
	if remainingInStep < 0 {
		remainingInStep = 0
	}
	if remainingInStep > stepDist {
		remainingInStep = stepDist
	}
	t.snap.DistanceToNextTurnM = remainingInStep
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	return t.state
}

// Snapshot returns the current externally visible state.
func (t *Tracker) Snapshot() Snapshot {
	return t.snap
}

// CurrentStep returns the active step, or nil when the route has no
// step list. The UI must tolerate a nil current step.
func (t *Tracker) CurrentStep() *route.Step {
	if t.stepIndex < 0 || t.stepIndex >= len(t.steps) {
		return nil
	}
	s := t.steps[t.stepIndex]
	return &s
}

// NextStep returns the step after the active one, or nil.
func (t *Tracker) NextStep() *route.Step {
	if t.stepIndex < 0 || t.stepIndex+1 >= len(t.steps) {
		return nil
	}
	s := t.steps[t.stepIndex+1]
	return &s
}
