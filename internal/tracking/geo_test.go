package tracking

import (
	"math"
	"testing"
)

// TestDistanceMeters checks the haversine distance against a known pair:
// one degree of latitude is about 111.2 km.
func TestDistanceMeters(t *testing.T) {
	got := distanceMeters(10.0, 20.0, 11.0, 20.0)
	want := 111195.0
	if math.Abs(got-want) > 200 {
		t.Errorf("expected ~%vm, got %vm", want, got)
	}

	if d := distanceMeters(10.0, 20.0, 10.0, 20.0); d != 0 {
		t.Errorf("same point: expected 0, got %v", d)
	}
}

// TestWithinZone checks containment including the boundary.
func TestWithinZone(t *testing.T) {
	z := Zone{Lat: 10.0, Lng: 20.0, RadiusM: 500}

	if !withinZone(z, 10.0, 20.0) {
		t.Error("center must be inside")
	}
	if !withinZone(z, 10.002, 20.0) { // ~222m north
		t.Error("point within radius must be inside")
	}
	if withinZone(z, 10.1, 20.0) { // ~11km north
		t.Error("distant point must be outside")
	}
}
