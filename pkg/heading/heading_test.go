package heading

import (
	"math"
	"testing"

	"github.com/fuelmate/go-nav/pkg/geo"
)

func TestEstimate_SensorAuthoritative(t *testing.T) {
	route := []geo.Coordinate{{Lat: 50, Lon: 14}, {Lat: 50, Lon: 14.01}} // route runs east

	// Sensor says south; sensor wins over route bearing
	deg, ok := Estimate(geo.Coordinate{Lat: 50, Lon: 14}, route, 180, true)
	if !ok || deg != 180 {
		t.Errorf("Expected sensor heading 180, got %v ok=%v", deg, ok)
	}
}

func TestEstimate_SensorZeroIsValid(t *testing.T) {
	deg, ok := Estimate(geo.Coordinate{Lat: 50, Lon: 14}, nil, 0, true)
	if !ok || deg != 0 {
		t.Errorf("Expected heading 0 (due north) accepted, got %v ok=%v", deg, ok)
	}
}

func TestEstimate_NegativeSensorFallsBackToRoute(t *testing.T) {
	// gpsHeading = -1 means absent; two-point route runs due north
	route := []geo.Coordinate{{Lat: 50, Lon: 14}, {Lat: 50.01, Lon: 14}}
	pos := geo.Coordinate{Lat: 50.0001, Lon: 14.0001} // near the first point

	deg, ok := Estimate(pos, route, -1, true)
	if !ok {
		t.Fatal("Expected route-bearing fallback")
	}
	diff := math.Min(deg, 360-deg)
	if diff > 1 {
		t.Errorf("Expected bearing ~0 (due north), got %v", deg)
	}
}

func TestEstimate_NoSensorUsesRouteBearing(t *testing.T) {
	route := []geo.Coordinate{
		{Lat: 50, Lon: 14},
		{Lat: 50, Lon: 14.01}, // due east
		{Lat: 50.01, Lon: 14.01},
	}
	pos := geo.Coordinate{Lat: 50.0002, Lon: 14.0001}

	deg, ok := Estimate(pos, route, 0, false)
	if !ok {
		t.Fatal("Expected route-bearing estimate")
	}
	if math.Abs(deg-90) > 1 {
		t.Errorf("Expected bearing ~90 (due east), got %v", deg)
	}
}

func TestEstimate_NoRoute(t *testing.T) {
	if _, ok := Estimate(geo.Coordinate{Lat: 50, Lon: 14}, nil, 0, false); ok {
		t.Error("Expected not-ok with no route")
	}
}

func TestEstimate_NearestIsLastPoint(t *testing.T) {
	route := []geo.Coordinate{{Lat: 50, Lon: 14}, {Lat: 50.01, Lon: 14}}
	pos := geo.Coordinate{Lat: 50.02, Lon: 14} // past the end

	if _, ok := Estimate(pos, route, 0, false); ok {
		t.Error("Expected not-ok when nearest point has no successor")
	}
}

func TestEstimate_NormalizesSensor(t *testing.T) {
	deg, ok := Estimate(geo.Coordinate{}, nil, 450, true)
	if !ok || deg != 90 {
		t.Errorf("Expected normalized 90, got %v ok=%v", deg, ok)
	}
}
