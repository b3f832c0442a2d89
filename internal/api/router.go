package api

import (
	"itinerary-route-service/internal/api/handlers"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(provider ports.RoutingProvider, maxActivities int) http.Handler {
	obs.RegisterDefault()

	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Provider: provider}
	routeHandler := &handlers.RouteHandler{
		Provider:      provider,
		MaxActivities: maxActivities,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/v1/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/api/v1/routes/calculate", routeHandler.Calculate)

	if searcher, ok := provider.(ports.PlaceSearcher); ok {
		placeHandler := &handlers.PlaceHandler{Searcher: searcher}
		mux.HandleFunc("/api/v1/places/autocomplete", placeHandler.Autocomplete)
	}

	return requestIDMiddleware(loggingMiddleware(mux))
}
