// Package navigation owns the live turn-by-turn session: it holds the
// location subscription for its lifetime, feeds the progress tracker
// and the chase camera, and publishes state snapshots for the overlay.
package navigation

import "github.com/fuelmate/go-nav/pkg/route"

// State is the read-only snapshot streamed to the overlay UI.
// CurrentStep is nil when the route carried no step list.
type State struct {
	SessionID            string      `json:"session_id"`
	CurrentStep          *route.Step `json:"current_step,omitempty"`
	NextStep             *route.Step `json:"next_step,omitempty"`
	DistanceToNextTurnM  float64     `json:"distance_to_next_turn_m"`
	TotalDistanceRemainM float64     `json:"total_distance_remaining_m"`
	TotalTimeRemainS     float64     `json:"total_time_remaining_s"`
	Arrived              bool        `json:"arrived"`
}
