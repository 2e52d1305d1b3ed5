// Package geo provides the geographic primitives for navigation:
// great-circle distance, bearing, and forward-offset math.
package geo

import "math"

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371000.0

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Distance returns the great-circle distance between two coordinates
// in meters, using the haversine formula.
func Distance(a, b Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bearing returns the initial great-circle bearing from a to b
// in degrees, normalized to [0, 360).
func Bearing(a, b Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) -
		math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := degrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Offset returns the coordinate distanceM meters ahead of origin along
// headingDeg, using a local flat-earth approximation. Accurate enough
// for camera-offset distances (a few hundred meters) away from the poles.
func Offset(origin Coordinate, headingDeg, distanceM float64) Coordinate {
	theta := radians(headingDeg)
	dLat := (distanceM * math.Cos(theta)) / EarthRadiusM
	dLon := (distanceM * math.Sin(theta)) / (EarthRadiusM * math.Cos(radians(origin.Lat)))

	return Coordinate{
		Lat: origin.Lat + degrees(dLat),
		Lon: origin.Lon + degrees(dLon),
	}
}

// Nearest returns the index of the point in route closest to pos, or -1
// if route is empty. Comparison uses squared equirectangular deltas;
// exact geodesic distance is unnecessary at route-polyline resolution.
func Nearest(pos Coordinate, route []Coordinate) int {
	best := -1
	bestDist := math.MaxFloat64
	cosLat := math.Cos(radians(pos.Lat))

	for i, p := range route {
		dLat := p.Lat - pos.Lat
		dLon := (p.Lon - pos.Lon) * cosLat
		d := dLat*dLat + dLon*dLon
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
