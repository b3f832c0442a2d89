package routing

import (
	"context"
	"encoding/json"
	"errors"
	"itinerary-route-service/internal/domain"
	"itinerary-route-service/internal/platform/obs"
	"itinerary-route-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL         = "https://api.geoapify.com/v1"
	DefaultTimeout         = 15 * time.Second
	DefaultAutocompleteTTL = 5 * time.Minute
	DefaultMatrixTTL       = 10 * time.Minute

	// Result limit used when geocoding activity locations.
	DefaultAutocompleteLimit = 3
)

// Tunables for GeoapifyProvider. Zero values select the defaults above.
type GeoapifyOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	AutocompleteTTL   time.Duration
	MatrixTTL         time.Duration
}

// GeoapifyProvider implements RoutingProvider using the Geoapify APIs.
//
// It coordinates:
//   - Input normalization for cache keys
//   - Short-lived autocomplete caching
//   - Longer-lived route matrix caching
//   - External API calls (no retries; errors are terminal)
//
// Routed paths are never cached since they depend on stop order.
// The provider is safe for concurrent use.
type GeoapifyProvider struct {
	session         *http.Client
	apiKey          string
	baseURL         string
	cache           ports.Cache
	limiter         *rate.Limiter
	autocompleteTTL time.Duration
	matrixTTL       time.Duration
}

func NewGeoapifyProvider(apiKey string, cache ports.Cache, opts GeoapifyOptions) (*GeoapifyProvider, error) {
	if cache == nil {
		return nil, errors.New("geoapify provider: cache is nil")
	}

	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.AutocompleteTTL <= 0 {
		opts.AutocompleteTTL = DefaultAutocompleteTTL
	}
	if opts.MatrixTTL <= 0 {
		opts.MatrixTTL = DefaultMatrixTTL
	}

	provider := &GeoapifyProvider{
		session:         &http.Client{Timeout: opts.Timeout},
		apiKey:          strings.TrimSpace(apiKey),
		baseURL:         strings.TrimSuffix(opts.BaseURL, "/"),
		cache:           cache,
		autocompleteTTL: opts.AutocompleteTTL,
		matrixTTL:       opts.MatrixTTL,
	}

	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		provider.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return provider, nil
}

func (g *GeoapifyProvider) Configured() bool { return g.apiKey != "" }

func (g *GeoapifyProvider) requireKey() error {
	if !g.Configured() {
		return domain.NewConfigurationError("GEOAPIFY_API_KEY is required for this endpoint")
	}
	return nil
}

// normalize ensures consistent cache keys by collapsing whitespace and case.
func (g *GeoapifyProvider) normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// cacheGet decodes a cached value into dst. Cache read failures are logged
// and treated as misses so a degraded cache never fails a request.
func (g *GeoapifyProvider) cacheGet(ctx context.Context, kind, key string, dst any) bool {
	b, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		obs.CacheLookups.WithLabelValues(kind, "error").Inc()
		obs.Logger(ctx).WithError(err).WithField("kind", kind).Warn("route cache read failed")
		return false
	}
	if !ok {
		obs.CacheLookups.WithLabelValues(kind, "miss").Inc()
		return false
	}

	if err := json.Unmarshal(b, dst); err != nil {
		obs.CacheLookups.WithLabelValues(kind, "error").Inc()
		obs.Logger(ctx).WithError(err).WithField("kind", kind).Warn("route cache entry undecodable")
		return false
	}

	obs.CacheLookups.WithLabelValues(kind, "hit").Inc()
	return true
}

func (g *GeoapifyProvider) cachePut(ctx context.Context, kind, key string, v any, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		obs.Logger(ctx).WithError(err).WithField("kind", kind).Warn("route cache encode failed")
		return
	}

	if err := g.cache.Set(ctx, key, b, ttl); err != nil {
		obs.Logger(ctx).WithError(err).WithField("kind", kind).Warn("route cache write failed")
	}
}
