package ports

import (
	"context"
	"errors"
	"itinerary-route-service/internal/domain"
)

// ErrNoMatch is returned by a Geocoder when a text has no candidates.
var ErrNoMatch = errors.New("no geocoding match")

// Contract for the external mapping provider used by route optimization.
type RoutingProvider interface {
	Geocoder

	// Report whether a provider credential is available.
	// When false, every provider call fails with a configuration error.
	Configured() bool

	// Return the pairwise distance/time matrix for coords.
	Matrix(ctx context.Context, coords []domain.Coordinates, mode string) (*domain.Matrix, error)

	// Return the routed path visiting coords in the given order.
	Route(ctx context.Context, coords []domain.Coordinates, mode string) (*domain.RoutedPath, error)
}
