package camera

import "time"

// Config holds all tunable parameters for the chase camera.
type Config struct {
	// ForwardOffsetM places the camera center this far ahead of the
	// raw position along the heading, so the view leads the vehicle.
	ForwardOffsetM float64

	// Chase view shape
	PitchDeg float64 // tilt of the chase view
	Zoom     float64 // map zoom level while following

	// Animation durations. Follow animations are bounded so
	// consecutive updates interpolate instead of jumping.
	FollowDuration   time.Duration
	RecenterDuration time.Duration

	// IdleRecenterDelay is how long free look lasts with no further
	// gesture before the camera snaps back to following.
	IdleRecenterDelay time.Duration
}

// DefaultConfig returns the production chase-camera tuning.
func DefaultConfig() Config {
	return Config{
		ForwardOffsetM:    150,
		PitchDeg:          60,
		Zoom:              17,
		FollowDuration:    800 * time.Millisecond,
		RecenterDuration:  1000 * time.Millisecond,
		IdleRecenterDelay: 5 * time.Second,
	}
}

// HighwayConfig returns a wider view for high-speed driving: the
// camera leads further and zooms out.
func HighwayConfig() Config {
	cfg := DefaultConfig()
	cfg.ForwardOffsetM = 300
	cfg.Zoom = 15.5
	cfg.PitchDeg = 55
	return cfg
}

// CityConfig returns a tighter view for dense urban turns.
func CityConfig() Config {
	cfg := DefaultConfig()
	cfg.ForwardOffsetM = 90
	cfg.Zoom = 17.5
	cfg.FollowDuration = 600 * time.Millisecond
	return cfg
}
