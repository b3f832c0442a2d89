package services

import (
	"context"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"math"
	"strings"
)

const (
	MinActivities = 2

	// Upper bound on activities per optimization; the matrix costs O(N²)
	// provider elements.
	DefaultMaxActivities = 25
)

type RouteRequest struct {
	Mode       string
	DayID      string
	Activities []domain.Activity

	// Optimization cap; zero selects DefaultMaxActivities.
	MaxActivities int
}

// OptimizeRoute reorders a day's activities to shorten travel time and
// returns the routed path for the new order.
//
// Steps: validate, resolve coordinates, fetch the time matrix, build a
// fixed-endpoint nearest-neighbor tour, then route the reordered stops.
// Totals prefer the provider's route summary and fall back to the
// matrix-derived sums. Without a provider credential a straight-line
// estimate is returned instead.
func OptimizeRoute(
	ctx context.Context,
	req RouteRequest,
	provider ports.RoutingProvider,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "services.OptimizeRoute")(&err)

	maxActivities := req.MaxActivities
	if maxActivities <= 0 {
		maxActivities = DefaultMaxActivities
	}

	// The cap is enforced before any provider call, geocoding included.
	if err := validateActivities(req.Activities, maxActivities); err != nil {
		return nil, err
	}

	mode := modeOrDefault(req.Mode)

	if !provider.Configured() {
		return estimateRoute(ctx, mode, req.Activities)
	}

	resolved, err := ResolveCoordinates(ctx, req.Activities, provider)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	coords := domain.CoordinatesOf(resolved)
	matrix, err := provider.Matrix(ctx, coords, mode)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}
	if !matrix.IsSquare(len(coords)) {
		return nil, domain.NewUpstreamError(
			"routing provider returned a malformed matrix",
			fmt.Errorf("matrix size %d for %d activities", matrix.Size(), len(coords)),
		)
	}

	order := BuildTour(matrix.Times)

	ordered := make([]domain.Activity, 0, len(order))
	for _, idx := range order {
		ordered = append(ordered, resolved[idx])
	}
	summary := SummarizeOrder(matrix, order)

	path, err := provider.Route(ctx, domain.CoordinatesOf(ordered), mode)
	if err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}
	if path == nil || len(path.Geometry) == 0 {
		return nil, domain.NewUpstreamError("routing provider returned no route geometry", nil)
	}

	return &domain.RouteResult{
		Mode:          mode,
		Activities:    ordered,
		Geometry:      path.Geometry,
		TotalDistance: numberOr(path.Distance, summary.TotalDistance),
		TotalTime:     numberOr(path.Time, summary.TotalTime),
		MatrixSummary: &summary,
	}, nil
}

// CalculateRoute returns the routed path for activities in their given
// order, without fetching a matrix or reordering. No activity cap applies.
func CalculateRoute(
	ctx context.Context,
	req RouteRequest,
	provider ports.RoutingProvider,
) (_ *domain.RouteResult, err error) {
	defer obs.Time(ctx, "services.CalculateRoute")(&err)

	if err := validateActivities(req.Activities, 0); err != nil {
		return nil, err
	}

	mode := modeOrDefault(req.Mode)

	if !provider.Configured() {
		return estimateRoute(ctx, mode, req.Activities)
	}

	resolved, err := ResolveCoordinates(ctx, req.Activities, provider)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}

	path, err := provider.Route(ctx, domain.CoordinatesOf(resolved), mode)
	if err != nil {
		return nil, fmt.Errorf("calculate route: %w", err)
	}
	if path == nil || len(path.Geometry) == 0 {
		return nil, domain.NewUpstreamError("routing provider returned no route geometry", nil)
	}

	return &domain.RouteResult{
		Mode:          mode,
		Activities:    resolved,
		Geometry:      path.Geometry,
		TotalDistance: numberOr(path.Distance, 0),
		TotalTime:     numberOr(path.Time, 0),
	}, nil
}

// estimateRoute is the degraded path used when no provider credential is
// configured. It needs explicit coordinates since nothing can be geocoded.
func estimateRoute(ctx context.Context, mode string, activities []domain.Activity) (*domain.RouteResult, error) {
	points := make([]domain.Coordinates, 0, len(activities))
	for _, a := range activities {
		if !a.HasCoordinates() {
			return nil, &domain.Error{
				Kind:       domain.KindConfiguration,
				Message:    fmt.Sprintf("activity %q has no coordinates and geocoding is not configured", a.ID),
				ActivityID: a.ID,
			}
		}
		points = append(points, *a.Coordinates)
	}

	obs.Fallbacks.Inc()
	obs.Logger(ctx).WithField("points", len(points)).Info("routing provider not configured; returning straight-line estimate")

	est := EstimateRoute(points)
	return &domain.RouteResult{
		Mode:          mode,
		Activities:    append([]domain.Activity(nil), activities...),
		TotalDistance: est.DistanceMeters,
		TotalTime:     float64(est.DurationSeconds),
		Estimate:      &est,
	}, nil
}

func validateActivities(activities []domain.Activity, maxActivities int) error {
	if len(activities) < MinActivities {
		return domain.NewValidationError("", "at least %d activities are required", MinActivities)
	}

	if maxActivities > 0 && len(activities) > maxActivities {
		return domain.NewValidationError("", "at most %d activities can be optimized; got %d", maxActivities, len(activities))
	}

	seen := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		if err := a.Validate(); err != nil {
			return err
		}

		if _, ok := seen[a.ID]; ok {
			return domain.NewValidationError(a.ID, "duplicate activity id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	return nil
}

func modeOrDefault(mode string) string {
	mode = strings.TrimSpace(mode)
	if mode == "" {
		return domain.DefaultMode
	}
	return mode
}

func numberOr(v *float64, fallback float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fallback
	}
	return *v
}
