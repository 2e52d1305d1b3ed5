// Package heading estimates the direction of travel from a position
// fix and the active route. Pure functions only; the caller holds the
// last known good heading and decides what "stale" means.
package heading

import "github.com/fuelmate/go-nav/pkg/geo"

// Estimate returns the best-known heading in degrees [0, 360).
//
// A sensor heading, when present and non-negative, is authoritative.
// Otherwise the heading is the bearing from the route point nearest to
// pos toward its successor. When neither is available (no route, or
// the nearest point is the last one) ok is false and the caller keeps
// its previous heading.
func Estimate(pos geo.Coordinate, route []geo.Coordinate, sensorDeg float64, hasSensor bool) (deg float64, ok bool) {
	if hasSensor && sensorDeg >= 0 {
		return normalize(sensorDeg), true
	}

	nearest := geo.Nearest(pos, route)
	if nearest < 0 || nearest >= len(route)-1 {
		return 0, false
	}

	return geo.Bearing(route[nearest], route[nearest+1]), true
}

func normalize(deg float64) float64 {
	for deg >= 360 {
		deg -= 360
	}
	for deg < 0 {
		deg += 360
	}
	return deg
}
