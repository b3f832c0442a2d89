package services

import (
	"context"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// ResolveCoordinates returns a copy of activities in which every activity
// carries coordinates. Activities that already have valid coordinates pass
// through unchanged; the rest are geocoded from their location concurrently.
// Any failure fails the whole batch and no partial result is returned.
func ResolveCoordinates(
	ctx context.Context,
	activities []domain.Activity,
	geocoder ports.Geocoder,
) (_ []domain.Activity, err error) {
	defer obs.Time(ctx, "services.ResolveCoordinates")(&err)

	for _, a := range activities {
		if err := a.Validate(); err != nil {
			return nil, err
		}
	}

	resolved := make([]domain.Activity, len(activities))
	copy(resolved, activities)

	g, gctx := errgroup.WithContext(ctx)
	for i := range resolved {
		if resolved[i].HasCoordinates() {
			continue
		}

		a := resolved[i]
		g.Go(func() error {
			c, err := geocoder.Geocode(gctx, a.Location)
			if errors.Is(err, ports.ErrNoMatch) {
				return &domain.Error{
					Kind:       domain.KindValidation,
					Message:    fmt.Sprintf("location %q of activity %q could not be geocoded", a.Location, a.ID),
					ActivityID: a.ID,
					Err:        err,
				}
			}
			if err != nil {
				return fmt.Errorf("resolve activity %q: %w", a.ID, err)
			}

			if !c.Valid() {
				return domain.NewValidationError(a.ID, "location %q of activity %q resolved to invalid coordinates", a.Location, a.ID)
			}

			// Each goroutine writes only its own index.
			resolved[i].Coordinates = &c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}
