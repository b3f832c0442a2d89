package services

import (
	"itinerary-route-service/internal/domain"
	"math"
)

const (
	earthRadiusMeters = 6371000.0

	// Assumed average speed for straight-line estimates (~60 km/h).
	averageSpeedMetersPerSecond = 16.67
)

// HaversineMeters returns the great-circle distance between two points.
func HaversineMeters(start, end domain.Coordinates) float64 {
	toRadians := func(v float64) float64 { return v * math.Pi / 180 }

	dLat := toRadians(end.Lat - start.Lat)
	dLng := toRadians(end.Lng - start.Lng)
	lat1 := toRadians(start.Lat)
	lat2 := toRadians(end.Lat)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// EstimateRoute approximates a route through points in the given order using
// great-circle legs and a fixed average speed.
func EstimateRoute(points []domain.Coordinates) domain.RouteEstimate {
	distance := 0.0
	for i := 1; i < len(points); i++ {
		distance += HaversineMeters(points[i-1], points[i])
	}

	return domain.RouteEstimate{
		DistanceMeters:  distance,
		DurationSeconds: int(math.Round(distance / averageSpeedMetersPerSecond)),
		Points:          append([]domain.Coordinates(nil), points...),
	}
}
