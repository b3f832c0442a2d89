package dto

import "encoding/json"

type ActivityRequest struct {
	ID       string   `json:"id"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Location string   `json:"location"`
}

type RouteRequest struct {
	Mode       string            `json:"mode"`
	DayID      string            `json:"dayId"`
	Activities []ActivityRequest `json:"activities"`
}

type ActivityResponse struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Location string  `json:"location,omitempty"`
}

type RouteSummaryResponse struct {
	TotalDistance float64 `json:"totalDistance"`
	TotalTime     float64 `json:"totalTime"`
}

type PointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteResponse is shared by optimize and calculate. The estimate fields are
// only present on the straight-line fallback, which has no geometry.
type RouteResponse struct {
	DayID               string                `json:"dayId,omitempty"`
	Mode                string                `json:"mode"`
	OptimizedActivities []ActivityResponse    `json:"optimizedActivities"`
	RouteGeometry       json.RawMessage       `json:"routeGeometry,omitempty"`
	TotalDistance       float64               `json:"totalDistance"`
	TotalTime           float64               `json:"totalTime"`
	MatrixSummary       *RouteSummaryResponse `json:"matrixSummary,omitempty"`

	Estimated       bool            `json:"estimated,omitempty"`
	DistanceMeters  *float64        `json:"distanceMeters,omitempty"`
	DurationSeconds *int            `json:"durationSeconds,omitempty"`
	Points          []PointResponse `json:"points,omitempty"`
}

type ErrorResponse struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	ActivityID string `json:"activityId,omitempty"`
}
