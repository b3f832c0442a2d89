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
)

type matrixLocation struct {
	Location []float64 `json:"location"`
}

type matrixRequest struct {
	Mode    string           `json:"mode"`
	Sources []matrixLocation `json:"sources"`
	Targets []matrixLocation `json:"targets"`
}

type matrixCell struct {
	Distance *float64 `json:"distance"`
	Time     *float64 `json:"time"`
	Duration *float64 `json:"duration"`
}

type matrixResponse struct {
	SourcesToTargets [][]*matrixCell `json:"sources_to_targets"`
	Matrix           [][]*matrixCell `json:"matrix"`
}

// Matrix retrieves the full pairwise distance/time table for coords using
// the Geoapify route matrix endpoint. Results are cached by mode and the
// exact, order-sensitive coordinate list.
func (g *GeoapifyProvider) Matrix(
	ctx context.Context,
	coords []domain.Coordinates,
	mode string,
) (_ *domain.Matrix, err error) {
	defer obs.Time(ctx, "geoapify.Matrix")(&err)

	if err := g.requireKey(); err != nil {
		return nil, err
	}

	if len(coords) == 0 {
		return nil, errors.New("matrix: coordinates must not be empty")
	}
	if mode == "" {
		mode = domain.DefaultMode
	}

	locations := make([]matrixLocation, 0, len(coords))
	keyPoints := make([][]float64, 0, len(coords))
	for _, c := range coords {
		locations = append(locations, matrixLocation{Location: c.CoordsToList()})
		keyPoints = append(keyPoints, c.CoordsToList())
	}

	keyJSON, err := json.Marshal(keyPoints)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix cache key: %w", err)
	}
	cacheKey := "matrix:" + mode + ":" + string(keyJSON)

	var cached domain.Matrix
	if g.cacheGet(ctx, "matrix", cacheKey, &cached) && cached.IsSquare(len(coords)) {
		return &cached, nil
	}

	payload, err := json.Marshal(matrixRequest{
		Mode:    mode,
		Sources: locations,
		Targets: locations,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	req, err := g.newRequest(ctx, http.MethodPost, "/routematrix", nil, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("matrix request: %w", err)
	}

	resp, err := g.do("matrix", req)
	if err != nil {
		return nil, domain.NewUpstreamError("route matrix request failed", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, domain.NewUpstreamError("unexpected route matrix response", err)
	}

	rows := mr.SourcesToTargets
	if rows == nil {
		rows = mr.Matrix
	}
	if rows == nil {
		return nil, domain.NewUpstreamError("unexpected route matrix response", errors.New("no matrix rows"))
	}

	n := len(coords)
	if len(rows) != n {
		return nil, domain.NewUpstreamError(
			"unexpected route matrix response",
			fmt.Errorf("expected %d source rows; got %d", n, len(rows)),
		)
	}

	m := &domain.Matrix{
		Distances: make([][]*float64, n),
		Times:     make([][]*float64, n),
	}
	for i, row := range rows {
		if len(row) != n {
			return nil, domain.NewUpstreamError(
				"unexpected route matrix response",
				fmt.Errorf("row %d has %d cells; want %d", i, len(row), n),
			)
		}

		m.Distances[i] = make([]*float64, n)
		m.Times[i] = make([]*float64, n)
		for j, cell := range row {
			if cell == nil {
				continue
			}
			// Missing metrics stay nil; they are never coerced to zero here.
			m.Distances[i][j] = cell.Distance
			if cell.Time != nil {
				m.Times[i][j] = cell.Time
			} else {
				m.Times[i][j] = cell.Duration
			}
		}
	}

	g.cachePut(ctx, "matrix", cacheKey, m, g.matrixTTL)
	return m, nil
}
