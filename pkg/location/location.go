// Package location defines the location-provider capability consumed by
// a navigation session, plus two implementations: a manual provider fed
// by an external source (the map widget gateway) and a route simulator
// for demos and tests.
package location

import (
	"errors"
	"time"

	"github.com/fuelmate/go-nav/pkg/geo"
)

// ErrUnavailable indicates the provider cannot deliver fixes (no
// permission, no signal). A session cannot start without a provider.
var ErrUnavailable = errors.New("location: provider unavailable")

// Sample is one position fix. Heading and speed are unreliable sensor
// fields: check the Has flags, never read the values blindly. A heading
// of 0 is a valid compass bearing, so absence is explicit.
type Sample struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	HeadingDeg float64        `json:"heading_deg"`
	SpeedMS    float64        `json:"speed_ms"`
	HasHeading bool           `json:"has_heading"`
	HasSpeed   bool           `json:"has_speed"`
	Time       time.Time      `json:"time"`
}

// Heading returns the sensor heading and whether one is present.
func (s Sample) Heading() (float64, bool) {
	return s.HeadingDeg, s.HasHeading
}

// Speed returns the sensor speed and whether one is present.
func (s Sample) Speed() (float64, bool) {
	return s.SpeedMS, s.HasSpeed
}

// ParseSample builds a Sample from raw wire values where a negative
// heading or speed means "not reported".
func ParseSample(lat, lon, headingDeg, speedMS float64) Sample {
	s := Sample{
		Coordinate: geo.Coordinate{Lat: lat, Lon: lon},
		Time:       time.Now(),
	}
	if headingDeg >= 0 {
		s.HeadingDeg = headingDeg
		s.HasHeading = true
	}
	if speedMS >= 0 {
		s.SpeedMS = speedMS
		s.HasSpeed = true
	}
	return s
}

// Subscription is a handle on an active location stream.
// Cancel is synchronous: no callback fires after it returns.
type Subscription interface {
	Cancel()
}

// Provider delivers position fixes to a callback in arrival order.
// Exactly one subscription is active per navigation session; the
// session owns it for its lifetime.
type Provider interface {
	Subscribe(fn func(Sample)) (Subscription, error)
}
