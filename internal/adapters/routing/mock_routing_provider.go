package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/ports"
	"sort"
	"strings"
	"sync"
)

// MockRoutingProvider is an in-memory RoutingProvider for tests and local runs.
// When MatrixResult is nil the matrix is synthesized from input positions
// (|i-j| km, |i-j| minutes). Call counters are safe for concurrent use.
type MockRoutingProvider struct {
	Unconfigured bool
	Places       map[string]domain.Coordinates
	GeocodeErr   error
	MatrixResult *domain.Matrix
	RouteResult  *domain.RoutedPath

	mu           sync.Mutex
	geocodeCalls int
	matrixCalls  int
	routeCalls   int
	routedCoords []domain.Coordinates
}

func NewMockRoutingProvider(places map[string]domain.Coordinates) *MockRoutingProvider {
	return &MockRoutingProvider{Places: places}
}

func (p *MockRoutingProvider) Configured() bool { return !p.Unconfigured }

func (p *MockRoutingProvider) Geocode(ctx context.Context, text string) (domain.Coordinates, error) {
	p.mu.Lock()
	p.geocodeCalls++
	p.mu.Unlock()

	if p.Unconfigured {
		return domain.Coordinates{}, domain.NewConfigurationError("routing provider is not configured")
	}
	if p.GeocodeErr != nil {
		return domain.Coordinates{}, p.GeocodeErr
	}

	c, ok := p.Places[text]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", text, ports.ErrNoMatch)
	}
	return c, nil
}

// Autocomplete returns known places whose name contains text, sorted by name.
func (p *MockRoutingProvider) Autocomplete(ctx context.Context, text string, limit int) ([]domain.Place, error) {
	if p.Unconfigured {
		return nil, domain.NewConfigurationError("routing provider is not configured")
	}

	needle := strings.ToLower(strings.TrimSpace(text))
	names := make([]string, 0, len(p.Places))
	for name := range p.Places {
		if strings.Contains(strings.ToLower(name), needle) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	places := make([]domain.Place, 0, len(names))
	for _, name := range names {
		places = append(places, domain.Place{Name: name, Formatted: name, Coordinates: p.Places[name]})
	}
	return places, nil
}

func (p *MockRoutingProvider) Matrix(ctx context.Context, coords []domain.Coordinates, mode string) (*domain.Matrix, error) {
	p.mu.Lock()
	p.matrixCalls++
	p.mu.Unlock()

	if p.Unconfigured {
		return nil, domain.NewConfigurationError("routing provider is not configured")
	}
	if p.MatrixResult != nil {
		return p.MatrixResult, nil
	}

	n := len(coords)
	m := &domain.Matrix{Distances: make([][]*float64, n), Times: make([][]*float64, n)}
	for i := 0; i < n; i++ {
		m.Distances[i] = make([]*float64, n)
		m.Times[i] = make([]*float64, n)
		for j := 0; j < n; j++ {
			steps := float64(i - j)
			if steps < 0 {
				steps = -steps
			}
			d, t := steps*1000, steps*60
			m.Distances[i][j] = &d
			m.Times[i][j] = &t
		}
	}
	return m, nil
}

func (p *MockRoutingProvider) Route(ctx context.Context, coords []domain.Coordinates, mode string) (*domain.RoutedPath, error) {
	p.mu.Lock()
	p.routeCalls++
	p.routedCoords = append([]domain.Coordinates(nil), coords...)
	p.mu.Unlock()

	if p.Unconfigured {
		return nil, domain.NewConfigurationError("routing provider is not configured")
	}
	if p.RouteResult != nil {
		return p.RouteResult, nil
	}
	return &domain.RoutedPath{Geometry: json.RawMessage(`{"type":"MultiLineString","coordinates":[]}`)}, nil
}

// Number of Geocode, Matrix and Route calls made so far.
func (p *MockRoutingProvider) Calls() (geocode, matrix, route int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.geocodeCalls, p.matrixCalls, p.routeCalls
}

// Coordinates passed to the most recent Route call.
func (p *MockRoutingProvider) RoutedCoords() []domain.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.Coordinates(nil), p.routedCoords...)
}
