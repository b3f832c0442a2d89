package handlers

import (
	"encoding/json"
	"errors"
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		obs.Logger(r.Context()).WithError(err).Errorf("encode failed: method=%s path=%s", r.Method, r.URL.Path)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

// writeServiceError maps a service failure to a status code. Only the
// caller-safe message of a *domain.Error reaches the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger := obs.Logger(r.Context()).WithError(err).WithField("op", op)

	var de *domain.Error
	if !errors.As(err, &de) {
		logger.Error("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindConfiguration:
		status = http.StatusServiceUnavailable
	case domain.KindUpstream:
		status = http.StatusBadGateway
	}

	if status >= 500 {
		logger.Warn("request failed")
	}

	writeJSON(w, r, status, dto.ErrorResponse{
		Error:      de.Message,
		Kind:       string(de.Kind),
		ActivityID: de.ActivityID,
	})
}
