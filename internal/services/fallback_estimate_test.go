package services

import (
	"itinerary-route-service/internal/domain"
	"math"
	"testing"
)

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is ~111.195 km on a 6371 km sphere.
	got := HaversineMeters(domain.Coordinates{Lat: 0, Lng: 0}, domain.Coordinates{Lat: 1, Lng: 0})
	if math.Abs(got-111194.93) > 1 {
		t.Fatalf("distance = %v, want ~111194.93", got)
	}

	if d := HaversineMeters(domain.Coordinates{Lat: 14.5, Lng: 121}, domain.Coordinates{Lat: 14.5, Lng: 121}); d != 0 {
		t.Fatalf("same point distance = %v, want 0", d)
	}
}

func TestEstimateRouteGrowsWithMorePoints(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 14.50, Lng: 121.00},
		{Lat: 14.55, Lng: 121.02},
		{Lat: 14.60, Lng: 121.05},
		{Lat: 14.80, Lng: 121.20},
	}

	prev := 0.0
	for n := 2; n <= len(points); n++ {
		est := EstimateRoute(points[:n])
		if est.DistanceMeters <= prev {
			t.Fatalf("n=%d: distance %v did not grow past %v", n, est.DistanceMeters, prev)
		}
		prev = est.DistanceMeters

		wantDuration := int(math.Round(est.DistanceMeters / averageSpeedMetersPerSecond))
		if est.DurationSeconds != wantDuration {
			t.Fatalf("n=%d: duration = %d, want %d", n, est.DurationSeconds, wantDuration)
		}
		if len(est.Points) != n {
			t.Fatalf("n=%d: points = %d", n, len(est.Points))
		}
	}
}
