package progress

import (
	"math"
	"testing"

	"github.com/fuelmate/go-nav/pkg/geo"
	"github.com/fuelmate/go-nav/pkg/location"
	"github.com/fuelmate/go-nav/pkg/route"
)

// northOf returns the point d meters north of origin.
func northOf(origin geo.Coordinate, d float64) geo.Coordinate {
	return geo.Offset(origin, 0, d)
}

func sampleAt(c geo.Coordinate, speed float64) location.Sample {
	s := location.Sample{Coordinate: c}
	if speed >= 0 {
		s.SpeedMS = speed
		s.HasSpeed = true
	}
	return s
}

func straightSteps(distances ...float64) []route.Step {
	var steps []route.Step
	for _, d := range distances {
		steps = append(steps, route.Step{
			Instruction:     "Continue",
			DistanceMeters:  d,
			DurationSeconds: d / 13.9,
			Maneuver:        route.ManeuverContinue,
		})
	}
	return steps
}

func TestTracker_StartSeedsTotals(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0144, Lon: 14}
	tr := NewTracker(DefaultConfig(), straightSteps(1000, 500, 100), dest)

	if tr.State() != StateNotStarted {
		t.Fatalf("Expected NotStarted, got %v", tr.State())
	}

	tr.Start()

	snap := tr.Snapshot()
	if snap.State != StateActive {
		t.Errorf("Expected Active, got %v", snap.State)
	}
	if snap.TotalDistanceRemainM != 1600 {
		t.Errorf("Expected 1600m planned, got %v", snap.TotalDistanceRemainM)
	}
	if snap.CurrentStepIndex != 0 {
		t.Errorf("Expected step 0, got %d", snap.CurrentStepIndex)
	}
	if snap.DistanceToNextTurnM != 1000 {
		t.Errorf("Expected first step distance 1000, got %v", snap.DistanceToNextTurnM)
	}
}

func TestTracker_ArrivalThreshold(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0, Lon: 14.0}

	cases := []struct {
		name   string
		pos    geo.Coordinate
		arrive bool
	}{
		// ~51m out: beyond the 50m threshold
		{"outside", geo.Coordinate{Lat: 50.00046, Lon: 14.0}, false},
		// ~44m out: under the threshold
		{"inside", geo.Coordinate{Lat: 50.00040, Lon: 14.0}, true},
	}

	for _, tc := range cases {
		tr := NewTracker(DefaultConfig(), straightSteps(1000), dest)
		tr.Start()

		snap := tr.Update(sampleAt(tc.pos, 10))
		if snap.Arrived != tc.arrive {
			t.Errorf("%s (%.1fm): expected arrived=%v, got %v",
				tc.name, geo.Distance(tc.pos, dest), tc.arrive, snap.Arrived)
		}
	}
}

func TestTracker_NoUpdatesAfterArrival(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0, Lon: 14.0}
	tr := NewTracker(DefaultConfig(), straightSteps(1000), dest)
	tr.Start()

	snap := tr.Update(sampleAt(geo.Coordinate{Lat: 50.0001, Lon: 14}, 10))
	if !snap.Arrived {
		t.Fatal("Expected arrival")
	}

	// A late sample far away must not resurrect the session
	snap = tr.Update(sampleAt(geo.Coordinate{Lat: 50.01, Lon: 14}, 10))
	if !snap.Arrived || snap.State != StateArrived {
		t.Errorf("Expected terminal Arrived state, got %+v", snap)
	}
}

func TestTracker_RemainingDistanceReplaced(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0144, Lon: 14}
	tr := NewTracker(DefaultConfig(), straightSteps(1000, 500, 100), dest)
	tr.Start()

	pos := northOf(dest, -1000) // 1000m south of destination
	snap := tr.Update(sampleAt(pos, 10))

	if math.Abs(snap.TotalDistanceRemainM-1000) > 5 {
		t.Errorf("Expected remaining ~1000m from fresh measurement, got %v", snap.TotalDistanceRemainM)
	}
	if math.Abs(snap.TotalTimeRemainS-100) > 1 {
		t.Errorf("Expected ~100s at 10m/s, got %v", snap.TotalTimeRemainS)
	}
}

func TestTracker_FallbackSpeed(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0144, Lon: 14}
	tr := NewTracker(DefaultConfig(), straightSteps(1600), dest)
	tr.Start()

	pos := northOf(dest, -1390) // 1390m out, no speed reported
	snap := tr.Update(sampleAt(pos, -1))

	// 1390 / 13.9 = 100s
	if math.Abs(snap.TotalTimeRemainS-100) > 2 {
		t.Errorf("Expected ~100s with 13.9m/s fallback, got %v", snap.TotalTimeRemainS)
	}
}

func TestTracker_StepAdvancement(t *testing.T) {
	start := geo.Coordinate{Lat: 50.0, Lon: 14.0}
	dest := northOf(start, 1600)
	tr := NewTracker(DefaultConfig(), straightSteps(1000, 500, 100), dest)
	tr.Start()

	// 500m covered: still in step 0, ~500m to the turn
	snap := tr.Update(sampleAt(northOf(start, 500), 14))
	if snap.CurrentStepIndex != 0 {
		t.Fatalf("Expected step 0 at 500m, got %d", snap.CurrentStepIndex)
	}
	if math.Abs(snap.DistanceToNextTurnM-500) > 10 {
		t.Errorf("Expected ~500m to next turn, got %v", snap.DistanceToNextTurnM)
	}

	// 980m covered: <30m left in step 0, advance to step 1
	snap = tr.Update(sampleAt(northOf(start, 980), 14))
	if snap.CurrentStepIndex != 1 {
		t.Fatalf("Expected step 1 at 980m, got %d", snap.CurrentStepIndex)
	}
	if snap.DistanceToNextTurnM != 500 {
		t.Errorf("Expected reset to full step distance 500, got %v", snap.DistanceToNextTurnM)
	}

	// 1480m covered: <30m left in step 1, advance to step 2
	snap = tr.Update(sampleAt(northOf(start, 1480), 14))
	if snap.CurrentStepIndex != 2 {
		t.Fatalf("Expected step 2 at 1480m, got %d", snap.CurrentStepIndex)
	}
}

func TestTracker_StepIndexMonotonic(t *testing.T) {
	start := geo.Coordinate{Lat: 50.0, Lon: 14.0}
	dest := northOf(start, 1600)
	tr := NewTracker(DefaultConfig(), straightSteps(400, 400, 400, 400), dest)
	tr.Start()

	// Noisy covered distances, including backward jumps
	covered := []float64{100, 390, 350, 420, 800, 760, 1180, 1200, 1500}
	last := -1
	for _, c := range covered {
		snap := tr.Update(sampleAt(northOf(start, c), 14))
		if snap.State != StateActive {
			break
		}
		if snap.CurrentStepIndex < last {
			t.Fatalf("Step index regressed: %d -> %d at covered=%v", last, snap.CurrentStepIndex, c)
		}
		last = snap.CurrentStepIndex
	}
}

func TestTracker_EmptySteps(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0144, Lon: 14}
	tr := NewTracker(DefaultConfig(), nil, dest)
	tr.Start()

	pos := northOf(dest, -1000)
	snap := tr.Update(sampleAt(pos, 10))

	if snap.CurrentStepIndex != -1 {
		t.Errorf("Expected index -1 with no steps, got %d", snap.CurrentStepIndex)
	}
	if tr.CurrentStep() != nil {
		t.Error("Expected nil current step")
	}
	if math.Abs(snap.TotalDistanceRemainM-1000) > 5 {
		t.Errorf("Expected distance still tracked, got %v", snap.TotalDistanceRemainM)
	}
}

func TestTracker_Stop(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0144, Lon: 14}
	tr := NewTracker(DefaultConfig(), straightSteps(1000), dest)
	tr.Start()
	tr.Stop()

	if tr.State() != StateStopped {
		t.Fatalf("Expected Stopped, got %v", tr.State())
	}

	before := tr.Snapshot()
	after := tr.Update(sampleAt(northOf(dest, -500), 10))
	if after != before {
		t.Errorf("Expected no-op update after Stop: %+v vs %+v", before, after)
	}
}

func TestTracker_NextStep(t *testing.T) {
	dest := geo.Coordinate{Lat: 50.0144, Lon: 14}
	tr := NewTracker(DefaultConfig(), straightSteps(1000, 500), dest)
	tr.Start()

	next := tr.NextStep()
	if next == nil || next.DistanceMeters != 500 {
		t.Errorf("Expected next step of 500m, got %+v", next)
	}
}
