package services

import (
	"context"
	"errors"
	"itinerary-route-service/internal/adapters/routing"
	"itinerary-route-service/internal/domain"
	"testing"
)

func TestResolveCoordinates(t *testing.T) {
	provider := routing.NewMockRoutingProvider(map[string]domain.Coordinates{
		"Intramuros": {Lat: 14.5906, Lng: 120.9751},
		"Rizal Park": {Lat: 14.5826, Lng: 120.9787},
	})

	input := []domain.Activity{
		{ID: "a", Coordinates: &domain.Coordinates{Lat: 14.5, Lng: 121.0}},
		{ID: "b", Location: "Intramuros"},
		{ID: "c", Location: "Rizal Park"},
	}

	got, err := ResolveCoordinates(context.Background(), input, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(got))
	}
	if *got[0].Coordinates != (domain.Coordinates{Lat: 14.5, Lng: 121.0}) {
		t.Fatalf("explicit coordinates changed: %+v", *got[0].Coordinates)
	}
	if got[1].Coordinates == nil || got[1].Coordinates.Lat != 14.5906 {
		t.Fatalf("Intramuros not resolved: %+v", got[1])
	}
	if got[2].Coordinates == nil || got[2].Coordinates.Lng != 120.9787 {
		t.Fatalf("Rizal Park not resolved: %+v", got[2])
	}

	if input[1].Coordinates != nil {
		t.Fatalf("input activity was mutated")
	}

	if geocodes, _, _ := provider.Calls(); geocodes != 2 {
		t.Fatalf("geocode calls = %d, want 2", geocodes)
	}
}

func TestResolveCoordinatesFailures(t *testing.T) {
	cases := []struct {
		name       string
		activities []domain.Activity
		geocodeErr error
		wantKind   domain.ErrorKind
		wantID     string
	}{
		{
			name: "neither coordinates nor location",
			activities: []domain.Activity{
				{ID: "a", Coordinates: &domain.Coordinates{Lat: 1, Lng: 1}},
				{ID: "b"},
			},
			wantKind: domain.KindValidation,
			wantID:   "b",
		},
		{
			name: "coordinates out of range",
			activities: []domain.Activity{
				{ID: "a", Coordinates: &domain.Coordinates{Lat: 91, Lng: 1}},
			},
			wantKind: domain.KindValidation,
			wantID:   "a",
		},
		{
			name: "location without a match",
			activities: []domain.Activity{
				{ID: "a", Coordinates: &domain.Coordinates{Lat: 1, Lng: 1}},
				{ID: "lost", Location: "Atlantis"},
			},
			wantKind: domain.KindValidation,
			wantID:   "lost",
		},
		{
			name: "provider failure",
			activities: []domain.Activity{
				{ID: "a", Location: "Intramuros"},
			},
			geocodeErr: domain.NewUpstreamError("geocoding provider request failed", errors.New("boom")),
			wantKind:   domain.KindUpstream,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := routing.NewMockRoutingProvider(map[string]domain.Coordinates{
				"Intramuros": {Lat: 14.5906, Lng: 120.9751},
			})
			provider.GeocodeErr = tc.geocodeErr

			got, err := ResolveCoordinates(context.Background(), tc.activities, provider)
			if err == nil {
				t.Fatalf("expected error, got %+v", got)
			}
			if got != nil {
				t.Fatalf("expected no partial result, got %+v", got)
			}

			var de *domain.Error
			if !errors.As(err, &de) {
				t.Fatalf("expected *domain.Error, got %T: %v", err, err)
			}
			if de.Kind != tc.wantKind {
				t.Fatalf("kind = %q, want %q", de.Kind, tc.wantKind)
			}
			if tc.wantID != "" && de.ActivityID != tc.wantID {
				t.Fatalf("activity id = %q, want %q", de.ActivityID, tc.wantID)
			}
		})
	}
}
