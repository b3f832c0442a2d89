package domain

import "encoding/json"

// DefaultMode is the travel mode used when a request does not name one.
const DefaultMode = "drive"

// Totals along an ordered sequence of stops.
type RouteSummary struct {
	TotalDistance float64 `json:"totalDistance"`
	TotalTime     float64 `json:"totalTime"`
}

// Routed path returned by the provider for an ordered list of stops.
// Distance and Time are nil when the provider summary omitted them.
type RoutedPath struct {
	Geometry json.RawMessage
	Distance *float64
	Time     *float64
}

// Straight-line approximation used when no routing provider is configured.
type RouteEstimate struct {
	DistanceMeters  float64
	DurationSeconds int
	Points          []Coordinates
}

// Represents the outcome of an optimize or calculate request.
// Activities are in visiting order. MatrixSummary is only set when a
// matrix was fetched; Estimate is only set on the degraded path.
type RouteResult struct {
	Mode          string
	Activities    []Activity
	Geometry      json.RawMessage
	TotalDistance float64
	TotalTime     float64
	MatrixSummary *RouteSummary
	Estimate      *RouteEstimate
}

// A geocoding candidate returned by place autocomplete.
type Place struct {
	Name        string      `json:"name"`
	Formatted   string      `json:"formatted"`
	Coordinates Coordinates `json:"coordinates"`
}
