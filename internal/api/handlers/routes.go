package handlers

import (
	"context"
	"encoding/json"
	"io"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"
	"strings"
)

const maxRouteBodyBytes = 1 << 20

type routeFunc func(context.Context, services.RouteRequest, ports.RoutingProvider) (*domain.RouteResult, error)

// RouteHandler exposes route optimization and plain route calculation.
type RouteHandler struct {
	Provider      ports.RoutingProvider
	MaxActivities int
}

// Optimize reorders the request's activities by nearest neighbor and
// returns the routed path for the new order.
func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "optimize route", services.OptimizeRoute)
}

// Calculate returns the routed path for activities in the given order.
func (h *RouteHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "calculate route", services.CalculateRoute)
}

func (h *RouteHandler) serve(w http.ResponseWriter, r *http.Request, op string, fn routeFunc) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRouteBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	activities, err := toActivities(req.Activities)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	svcReq := services.RouteRequest{
		Mode:          req.Mode,
		DayID:         strings.TrimSpace(req.DayID),
		Activities:    activities,
		MaxActivities: h.MaxActivities,
	}

	result, err := fn(r.Context(), svcReq, h.Provider)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(svcReq.DayID, result))
}

func toActivities(in []dto.ActivityRequest) ([]domain.Activity, error) {
	out := make([]domain.Activity, 0, len(in))
	for _, a := range in {
		id := strings.TrimSpace(a.ID)
		if (a.Lat == nil) != (a.Lng == nil) {
			return nil, domain.NewValidationError(id, "activity %q must provide both lat and lng", id)
		}

		act := domain.Activity{
			ID:       id,
			Location: strings.TrimSpace(a.Location),
		}
		if a.Lat != nil {
			act.Coordinates = &domain.Coordinates{Lat: *a.Lat, Lng: *a.Lng}
		}
		out = append(out, act)
	}
	return out, nil
}

func toRouteResponse(dayID string, res *domain.RouteResult) dto.RouteResponse {
	out := dto.RouteResponse{
		DayID:               dayID,
		Mode:                res.Mode,
		OptimizedActivities: make([]dto.ActivityResponse, 0, len(res.Activities)),
		RouteGeometry:       res.Geometry,
		TotalDistance:       res.TotalDistance,
		TotalTime:           res.TotalTime,
	}

	for _, a := range res.Activities {
		ar := dto.ActivityResponse{ID: a.ID, Location: a.Location}
		if a.Coordinates != nil {
			ar.Lat = a.Coordinates.Lat
			ar.Lng = a.Coordinates.Lng
		}
		out.OptimizedActivities = append(out.OptimizedActivities, ar)
	}

	if res.MatrixSummary != nil {
		out.MatrixSummary = &dto.RouteSummaryResponse{
			TotalDistance: res.MatrixSummary.TotalDistance,
			TotalTime:     res.MatrixSummary.TotalTime,
		}
	}

	if est := res.Estimate; est != nil {
		out.Estimated = true
		out.DistanceMeters = &est.DistanceMeters
		out.DurationSeconds = &est.DurationSeconds
		out.Points = make([]dto.PointResponse, 0, len(est.Points))
		for _, p := range est.Points {
			out.Points = append(out.Points, dto.PointResponse{Lat: p.Lat, Lng: p.Lng})
		}
	}

	return out
}
