package geo

import (
	"math"
	"testing"
)

func TestDistance_KnownPair(t *testing.T) {
	// Prague main station to Prague castle, roughly 2.5 km
	a := Coordinate{Lat: 50.0833, Lon: 14.4357}
	b := Coordinate{Lat: 50.0900, Lon: 14.4002}

	d := Distance(a, b)
	if d < 2400 || d > 2800 {
		t.Errorf("Expected ~2.5km, got %.0fm", d)
	}
}

func TestDistance_ZeroForSamePoint(t *testing.T) {
	p := Coordinate{Lat: 50.0, Lon: 14.0}
	if d := Distance(p, p); d != 0 {
		t.Errorf("Expected 0, got %v", d)
	}
}

func TestBearing_CardinalDirections(t *testing.T) {
	origin := Coordinate{Lat: 50.0, Lon: 14.0}

	cases := []struct {
		name   string
		to     Coordinate
		expect float64
	}{
		{"north", Coordinate{Lat: 50.01, Lon: 14.0}, 0},
		{"east", Coordinate{Lat: 50.0, Lon: 14.01}, 90},
		{"south", Coordinate{Lat: 49.99, Lon: 14.0}, 180},
		{"west", Coordinate{Lat: 50.0, Lon: 13.99}, 270},
	}

	for _, tc := range cases {
		b := Bearing(origin, tc.to)
		diff := math.Abs(b - tc.expect)
		if diff > 180 {
			diff = 360 - diff
		}
		if diff > 0.1 {
			t.Errorf("%s: expected bearing %v, got %v", tc.name, tc.expect, b)
		}
	}
}

func TestBearing_Normalized(t *testing.T) {
	a := Coordinate{Lat: 50.0, Lon: 14.0}
	b := Coordinate{Lat: 50.0, Lon: 13.9}

	bearing := Bearing(a, b)
	if bearing < 0 || bearing >= 360 {
		t.Errorf("Bearing out of [0,360): %v", bearing)
	}
}

func TestOffset_EastKeepsLatitude(t *testing.T) {
	origin := Coordinate{Lat: 50.0, Lon: 14.0}

	p := Offset(origin, 90, 150)
	if p.Lon <= origin.Lon {
		t.Errorf("Expected longitude to increase, got %v", p.Lon)
	}
	if math.Abs(p.Lat-origin.Lat) > 1e-9 {
		t.Errorf("Expected latitude unchanged, got %v", p.Lat)
	}
}

func TestOffset_RoundTripDistance(t *testing.T) {
	origin := Coordinate{Lat: 50.0, Lon: 14.0}

	for _, heading := range []float64{0, 45, 90, 135, 180, 270} {
		p := Offset(origin, heading, 150)
		d := Distance(origin, p)
		if math.Abs(d-150) > 1.0 {
			t.Errorf("heading %v: expected offset ~150m, got %.2fm", heading, d)
		}
	}
}

func TestNearest(t *testing.T) {
	route := []Coordinate{
		{Lat: 50.00, Lon: 14.00},
		{Lat: 50.01, Lon: 14.00},
		{Lat: 50.02, Lon: 14.00},
	}

	pos := Coordinate{Lat: 50.011, Lon: 14.0005}
	if i := Nearest(pos, route); i != 1 {
		t.Errorf("Expected nearest index 1, got %d", i)
	}
}

func TestNearest_EmptyRoute(t *testing.T) {
	if i := Nearest(Coordinate{Lat: 50, Lon: 14}, nil); i != -1 {
		t.Errorf("Expected -1 for empty route, got %d", i)
	}
}
