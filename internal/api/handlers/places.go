package handlers

import (
	"itinerary-route-service/internal/api/dto"
	"itinerary-route-service/internal/ports"
	"net/http"
	"strconv"
	"strings"
)

const maxAutocompleteLimit = 10

// PlaceHandler exposes place autocomplete used to pick activity locations.
type PlaceHandler struct {
	Searcher ports.PlaceSearcher
}

func (h *PlaceHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		writeError(w, r, http.StatusBadRequest, "text is required")
		return
	}

	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxAutocompleteLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 10")
			return
		}
		limit = n
	}

	places, err := h.Searcher.Autocomplete(r.Context(), text, limit)
	if err != nil {
		writeServiceError(w, r, "autocomplete", err)
		return
	}

	res := dto.ListPlacesResponse{Places: make([]dto.PlaceResponse, 0, len(places))}
	for _, p := range places {
		res.Places = append(res.Places, dto.PlaceResponse{
			Name:      p.Name,
			Formatted: p.Formatted,
			Lat:       p.Coordinates.Lat,
			Lng:       p.Coordinates.Lng,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
