package protocol

import (
	"time"

	"github.com/fuelmate/go-nav/pkg/camera"
	"github.com/fuelmate/go-nav/pkg/geo"
)

// CameraCommand animates the map widget's camera.
type CameraCommand struct {
	Pose       camera.Pose `json:"pose"`
	DurationMS int64       `json:"duration_ms"`
}

// RouteData ships the decoded route to the widget for rendering the
// destination marker and route polyline.
type RouteData struct {
	Geometry    []geo.Coordinate `json:"geometry"`
	Destination geo.Coordinate   `json:"destination"`
}

// LocationData is a raw position fix from the device. A negative
// heading or speed means the sensor reported nothing.
type LocationData struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	HeadingDeg float64 `json:"heading_deg"`
	SpeedMS    float64 `json:"speed_ms"`
}

// StartData confirms a destination selection.
type StartData struct {
	Origin      geo.Coordinate `json:"origin"`
	Destination geo.Coordinate `json:"destination"`
}

// FallbackData tells the widget to open external navigation instead.
type FallbackData struct {
	URL    string `json:"url"`
	Reason string `json:"reason"`
}

// NewCameraMessage creates a camera animation command.
func NewCameraMessage(pose camera.Pose, duration time.Duration) (*Message, error) {
	return NewMessage(TypeCamera, CameraCommand{
		Pose:       pose,
		DurationMS: duration.Milliseconds(),
	})
}

// NewRouteMessage creates a route-rendering message.
func NewRouteMessage(geometry []geo.Coordinate, destination geo.Coordinate) (*Message, error) {
	return NewMessage(TypeRoute, RouteData{
		Geometry:    geometry,
		Destination: destination,
	})
}

// NewFallbackMessage creates an external-navigation handoff message.
func NewFallbackMessage(url, reason string) (*Message, error) {
	return NewMessage(TypeFallback, FallbackData{URL: url, Reason: reason})
}
