package repositories

import (
	"math"
	"testing"
)

func TestHaversineDistanceKm(t *testing.T) {
	// Almaty to Astana, roughly 970 km.
	got := HaversineDistanceKm(43.238949, 76.889709, 51.169392, 71.449074)
	if math.Abs(got-970) > 15 {
		t.Errorf("Almaty-Astana distance = %.1f km, want ~970", got)
	}

	if got := HaversineDistanceKm(43.25, 76.95, 43.25, 76.95); got != 0 {
		t.Errorf("zero distance = %f, want 0", got)
	}
}

func TestCalculateDistanceKmNilCoordinates(t *testing.T) {
	lat, lon := 43.25, 76.95
	if got := calculateDistanceKm(nil, nil, &lat, &lon); got != nil {
		t.Errorf("distance with missing customer coords = %v, want nil", got)
	}
	if got := calculateDistanceKm(&lat, &lon, &lat, nil); got != nil {
		t.Errorf("distance with missing executor lon = %v, want nil", got)
	}
	if got := calculateDistanceKm(&lat, &lon, &lat, &lon); got == nil || *got != 0 {
		t.Errorf("distance with full coords = %v, want 0", got)
	}
}
