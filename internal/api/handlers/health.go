package handlers

import (
	"itinerary-route-service/internal/ports"
	"net/http"
)

// HealthHandler provides a minimal liveness check that also reports whether
// routing runs against the live provider or the straight-line fallback.
type HealthHandler struct {
	Provider ports.RoutingProvider
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	routing := "live"
	if h.Provider == nil || !h.Provider.Configured() {
		routing = "estimate"
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok", "routing": routing})
}
