package ports

import (
	"context"
	"itinerary-route-service/internal/domain"
)

// Contract for turning a free-text place name into coordinates.
type Geocoder interface {
	// Return the coordinates of the best match for text.
	// A text with no match returns ErrNoMatch.
	Geocode(ctx context.Context, text string) (domain.Coordinates, error)
}

// Optional extension of Geocoder that exposes the candidate list.
type PlaceSearcher interface {
	// Return up to limit candidate places for text.
	Autocomplete(ctx context.Context, text string, limit int) ([]domain.Place, error)
}
