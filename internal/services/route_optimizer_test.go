package services

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/adapters/routing"
	"itinerary-route-service/internal/domain"
	"slices"
	"testing"
)

func activitiesWithCoords(n int) []domain.Activity {
	out := make([]domain.Activity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Activity{
			ID:          fmt.Sprintf("act-%d", i),
			Coordinates: &domain.Coordinates{Lat: 14.5 + float64(i)*0.01, Lng: 121.0},
		})
	}
	return out
}

func ids(activities []domain.Activity) []string {
	out := make([]string, 0, len(activities))
	for _, a := range activities {
		out = append(out, a.ID)
	}
	return out
}

func TestOptimizeRouteThreeActivities(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.RouteResult = &domain.RoutedPath{
		Geometry: json.RawMessage(`{"type":"MultiLineString","coordinates":[]}`),
		Distance: ptr(2500),
		Time:     ptr(400),
	}

	req := RouteRequest{Mode: "drive", Activities: activitiesWithCoords(3)}
	res, err := OptimizeRoute(context.Background(), req, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	geocodes, matrices, routes := provider.Calls()
	if geocodes != 0 || matrices != 1 || routes != 1 {
		t.Fatalf("calls geocode=%d matrix=%d route=%d, want 0/1/1", geocodes, matrices, routes)
	}

	if got := ids(res.Activities); !slices.Equal(got, []string{"act-0", "act-1", "act-2"}) {
		t.Fatalf("order = %v", got)
	}
	if len(provider.RoutedCoords()) != 3 {
		t.Fatalf("route called with %d coordinates, want 3", len(provider.RoutedCoords()))
	}

	if res.TotalDistance != 2500 || res.TotalTime != 400 {
		t.Fatalf("totals = %v/%v, want provider summary 2500/400", res.TotalDistance, res.TotalTime)
	}
	// Synthesized matrix: one step per leg = 1000 m / 60 s.
	if res.MatrixSummary == nil || res.MatrixSummary.TotalDistance != 2000 || res.MatrixSummary.TotalTime != 120 {
		t.Fatalf("matrix summary = %+v, want 2000/120", res.MatrixSummary)
	}
	if res.Mode != "drive" || len(res.Geometry) == 0 || res.Estimate != nil {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestOptimizeRouteReordersInterior(t *testing.T) {
	// start, far, near, end: near should be visited first.
	times := square(4, map[[2]int]float64{
		{0, 1}: 900, {0, 2}: 100,
		{2, 1}: 200, {1, 2}: 200,
		{1, 3}: 50, {2, 3}: 800,
	})
	distances := square(4, map[[2]int]float64{
		{0, 2}: 1000, {2, 1}: 2000, {1, 3}: 500,
	})

	provider := routing.NewMockRoutingProvider(map[string]domain.Coordinates{
		"Intramuros": {Lat: 14.5906, Lng: 120.9751},
	})
	provider.MatrixResult = &domain.Matrix{Distances: distances, Times: times}

	activities := []domain.Activity{
		{ID: "start", Coordinates: &domain.Coordinates{Lat: 14.50, Lng: 121.0}},
		{ID: "far", Coordinates: &domain.Coordinates{Lat: 14.70, Lng: 121.0}},
		{ID: "near", Location: "Intramuros"},
		{ID: "end", Coordinates: &domain.Coordinates{Lat: 14.80, Lng: 121.0}},
	}

	res, err := OptimizeRoute(context.Background(), RouteRequest{Activities: activities}, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"start", "near", "far", "end"}
	if got := ids(res.Activities); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	routed := provider.RoutedCoords()
	if routed[1] != (domain.Coordinates{Lat: 14.5906, Lng: 120.9751}) {
		t.Fatalf("route not called with reordered coordinates: %v", routed)
	}

	// No provider summary: totals come from the matrix, missing cells as 0.
	if res.TotalDistance != 3500 || res.TotalTime != 350 {
		t.Fatalf("totals = %v/%v, want 3500/350", res.TotalDistance, res.TotalTime)
	}
	if res.Mode != domain.DefaultMode {
		t.Fatalf("mode = %q, want default", res.Mode)
	}
}

func TestOptimizeRouteActivityCap(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)

	if _, err := OptimizeRoute(context.Background(), RouteRequest{Activities: activitiesWithCoords(DefaultMaxActivities)}, provider); err != nil {
		t.Fatalf("25 activities should be accepted: %v", err)
	}

	provider = routing.NewMockRoutingProvider(nil)
	tooMany := activitiesWithCoords(DefaultMaxActivities + 1)
	// A location-only activity proves the cap fires before geocoding too.
	tooMany[3] = domain.Activity{ID: "loc", Location: "Intramuros"}

	_, err := OptimizeRoute(context.Background(), RouteRequest{Activities: tooMany}, provider)
	if domain.KindOf(err) != domain.KindValidation {
		t.Fatalf("kind = %q, want validation (err=%v)", domain.KindOf(err), err)
	}
	if g, m, r := provider.Calls(); g+m+r != 0 {
		t.Fatalf("provider called %d/%d/%d times before rejection", g, m, r)
	}
}

func TestOptimizeRouteValidation(t *testing.T) {
	cases := map[string][]domain.Activity{
		"too few":      activitiesWithCoords(1),
		"duplicate id": {{ID: "a", Location: "x"}, {ID: "a", Location: "y"}},
		"missing both": {{ID: "a", Location: "x"}, {ID: "b"}},
		"bad lng":      {{ID: "a", Location: "x"}, {ID: "b", Coordinates: &domain.Coordinates{Lat: 0, Lng: 181}}},
	}

	for name, activities := range cases {
		t.Run(name, func(t *testing.T) {
			provider := routing.NewMockRoutingProvider(nil)
			_, err := OptimizeRoute(context.Background(), RouteRequest{Activities: activities}, provider)
			if domain.KindOf(err) != domain.KindValidation {
				t.Fatalf("kind = %q, want validation (err=%v)", domain.KindOf(err), err)
			}
		})
	}
}

func TestOptimizeRouteUpstreamFailures(t *testing.T) {
	t.Run("malformed matrix", func(t *testing.T) {
		provider := routing.NewMockRoutingProvider(nil)
		provider.MatrixResult = &domain.Matrix{Distances: square(2, nil), Times: square(2, nil)}

		_, err := OptimizeRoute(context.Background(), RouteRequest{Activities: activitiesWithCoords(3)}, provider)
		if domain.KindOf(err) != domain.KindUpstream {
			t.Fatalf("kind = %q, want upstream", domain.KindOf(err))
		}
	})

	t.Run("route without geometry", func(t *testing.T) {
		provider := routing.NewMockRoutingProvider(nil)
		provider.RouteResult = &domain.RoutedPath{Distance: ptr(10)}

		_, err := OptimizeRoute(context.Background(), RouteRequest{Activities: activitiesWithCoords(3)}, provider)
		if domain.KindOf(err) != domain.KindUpstream {
			t.Fatalf("kind = %q, want upstream", domain.KindOf(err))
		}
	})
}

func TestOptimizeRouteWithoutCredentialEstimates(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.Unconfigured = true

	res, err := OptimizeRoute(context.Background(), RouteRequest{Activities: activitiesWithCoords(3)}, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Estimate == nil {
		t.Fatalf("expected a straight-line estimate")
	}
	if res.Estimate.DistanceMeters <= 0 || res.TotalDistance != res.Estimate.DistanceMeters {
		t.Fatalf("unexpected estimate %+v", res.Estimate)
	}
	if got := ids(res.Activities); !slices.Equal(got, []string{"act-0", "act-1", "act-2"}) {
		t.Fatalf("estimate must keep given order, got %v", got)
	}
	if g, m, r := provider.Calls(); g+m+r != 0 {
		t.Fatalf("provider called %d/%d/%d times without credential", g, m, r)
	}

	// Location-only activities cannot be estimated.
	activities := activitiesWithCoords(2)
	activities = append(activities, domain.Activity{ID: "loc", Location: "Intramuros"})
	_, err = OptimizeRoute(context.Background(), RouteRequest{Activities: activities}, provider)
	if domain.KindOf(err) != domain.KindConfiguration {
		t.Fatalf("kind = %q, want configuration", domain.KindOf(err))
	}
}

func TestCalculateRouteKeepsOrder(t *testing.T) {
	provider := routing.NewMockRoutingProvider(nil)
	provider.RouteResult = &domain.RoutedPath{
		Geometry: json.RawMessage(`{"type":"LineString"}`),
		Distance: ptr(42),
	}

	// More than the optimization cap is fine for a plain calculation.
	activities := activitiesWithCoords(DefaultMaxActivities + 5)
	slices.Reverse(activities)

	res, err := CalculateRoute(context.Background(), RouteRequest{Mode: "walk", Activities: activities}, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, matrices, routes := provider.Calls(); matrices != 0 || routes != 1 {
		t.Fatalf("calls matrix=%d route=%d, want 0/1", matrices, routes)
	}
	if !slices.Equal(ids(res.Activities), ids(activities)) {
		t.Fatalf("calculate must not reorder")
	}
	if res.TotalDistance != 42 || res.TotalTime != 0 || res.MatrixSummary != nil {
		t.Fatalf("unexpected totals %+v", res)
	}
	if res.Mode != "walk" {
		t.Fatalf("mode = %q", res.Mode)
	}
}
