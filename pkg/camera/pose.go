// Package camera arbitrates the map camera between autonomous vehicle
// following and user-controlled free look, and computes the chase-view
// pose commands sent to the map widget.
package camera

import (
	"time"

	"github.com/fuelmate/go-nav/pkg/geo"
)

// Pose is one camera configuration for the map widget.
type Pose struct {
	Center     geo.Coordinate `json:"center"`
	HeadingDeg float64        `json:"heading_deg"`
	PitchDeg   float64        `json:"pitch_deg"`
	Zoom       float64        `json:"zoom"`
}

// MapCamera is the injected map-widget capability. Implementations
// forward the animation to a rendering surface; tests record the calls.
type MapCamera interface {
	AnimateCamera(pose Pose, duration time.Duration)
}

// Mode says who owns the camera.
type Mode string

const (
	// ModeFollow tracks the vehicle autonomously.
	ModeFollow Mode = "follow"
	// ModeFreeLook leaves the camera under user gesture control.
	ModeFreeLook Mode = "free_look"
)
