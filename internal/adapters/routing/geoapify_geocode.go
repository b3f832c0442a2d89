package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type autocompleteResponse struct {
	Features []struct {
		Properties struct {
			Name      string   `json:"name"`
			Formatted string   `json:"formatted"`
			Lat       *float64 `json:"lat"`
			Lon       *float64 `json:"lon"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Autocomplete returns up to limit candidate places for text using
// Geoapify (/geocode/autocomplete). Results, including empty ones, are
// cached by normalized text and limit.
func (g *GeoapifyProvider) Autocomplete(
	ctx context.Context,
	text string,
	limit int,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "geoapify.Autocomplete")(&err)

	if err := g.requireKey(); err != nil {
		return nil, err
	}

	norm := g.normalize(text)
	if norm == "" {
		return nil, domain.NewValidationError("", "text must be non-empty")
	}
	if limit <= 0 {
		limit = DefaultAutocompleteLimit
	}

	cacheKey := fmt.Sprintf("autocomplete:%d:%s", limit, norm)
	var cached []domain.Place
	if g.cacheGet(ctx, "autocomplete", cacheKey, &cached) {
		return cached, nil
	}

	q := url.Values{}
	q.Set("text", strings.TrimSpace(text))
	q.Set("limit", strconv.Itoa(limit))

	req, err := g.newRequest(ctx, http.MethodGet, "/geocode/autocomplete", q, nil)
	if err != nil {
		return nil, fmt.Errorf("autocomplete request: %w", err)
	}

	resp, err := g.do("autocomplete", req)
	if err != nil {
		return nil, domain.NewUpstreamError("geocoding provider request failed", err)
	}
	defer resp.Body.Close()

	var decoded autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewUpstreamError("unexpected geocoding response", err)
	}

	places := make([]domain.Place, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		var c domain.Coordinates
		switch {
		case f.Properties.Lat != nil && f.Properties.Lon != nil:
			c = domain.Coordinates{Lat: *f.Properties.Lat, Lng: *f.Properties.Lon}
		case len(f.Geometry.Coordinates) == 2:
			c = domain.Coordinates{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]}
		default:
			continue
		}

		places = append(places, domain.Place{
			Name:        f.Properties.Name,
			Formatted:   f.Properties.Formatted,
			Coordinates: c,
		})
	}

	g.cachePut(ctx, "autocomplete", cacheKey, places, g.autocompleteTTL)
	return places, nil
}

// Geocode resolves text to the coordinates of its top autocomplete match.
func (g *GeoapifyProvider) Geocode(ctx context.Context, text string) (domain.Coordinates, error) {
	places, err := g.Autocomplete(ctx, text, DefaultAutocompleteLimit)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if len(places) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", text, ports.ErrNoMatch)
	}

	return places[0].Coordinates, nil
}
