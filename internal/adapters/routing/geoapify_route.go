package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strings"
)

type routingResponse struct {
	Features []struct {
		Geometry   json.RawMessage `json:"geometry"`
		Properties struct {
			Distance *float64 `json:"distance"`
			Time     *float64 `json:"time"`
		} `json:"properties"`
	} `json:"features"`
}

// Route requests the routed path visiting coords in order (/routing).
// It is never cached: a different stop order yields a different path.
func (g *GeoapifyProvider) Route(
	ctx context.Context,
	coords []domain.Coordinates,
	mode string,
) (_ *domain.RoutedPath, err error) {
	defer obs.Time(ctx, "geoapify.Route")(&err)

	if err := g.requireKey(); err != nil {
		return nil, err
	}

	if len(coords) < 2 {
		return nil, errors.New("route: at least two waypoints are required")
	}
	if mode == "" {
		mode = domain.DefaultMode
	}

	waypoints := make([]string, 0, len(coords))
	for _, c := range coords {
		waypoints = append(waypoints, c.Waypoint())
	}

	q := url.Values{}
	q.Set("waypoints", strings.Join(waypoints, "|"))
	q.Set("mode", mode)

	req, err := g.newRequest(ctx, http.MethodGet, "/routing", q, nil)
	if err != nil {
		return nil, fmt.Errorf("route request: %w", err)
	}

	resp, err := g.do("route", req)
	if err != nil {
		return nil, domain.NewUpstreamError("routing request failed", err)
	}
	defer resp.Body.Close()

	var decoded routingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewUpstreamError("unexpected routing response", err)
	}

	if len(decoded.Features) == 0 {
		return nil, domain.NewUpstreamError("routing provider returned no route geometry", nil)
	}

	feature := decoded.Features[0]
	geometry := bytes.TrimSpace(feature.Geometry)
	if len(geometry) == 0 || bytes.Equal(geometry, []byte("null")) {
		return nil, domain.NewUpstreamError("routing provider returned no route geometry", nil)
	}

	return &domain.RoutedPath{
		Geometry: json.RawMessage(geometry),
		Distance: feature.Properties.Distance,
		Time:     feature.Properties.Time,
	}, nil
}
