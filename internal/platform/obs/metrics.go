package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// ProviderCalls counts outbound routing provider calls by operation and outcome.
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_provider_calls_total", Help: "Routing provider calls by operation and outcome."},
		[]string{"op", "outcome"},
	)
	// ProviderLatency tracks routing provider latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "routing_provider_latency_seconds", Help: "Routing provider latency in seconds.", Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15}},
		[]string{"op"},
	)

	// CacheLookups counts cache reads by cache kind and result (hit/miss/error).
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_cache_lookups_total", Help: "Routing cache lookups by kind and result."},
		[]string{"kind", "result"},
	)

	// Fallbacks counts requests answered with the straight-line estimate.
	Fallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "route_fallback_estimates_total", Help: "Route requests answered with a haversine estimate."},
	)
)

// RegisterDefault registers collectors to Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(ProviderCalls)
		Registry.MustRegister(ProviderLatency)
		Registry.MustRegister(CacheLookups)
		Registry.MustRegister(Fallbacks)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
