package routing

import (
	"context"
	"fmt"
	"io"
	"itinerary-route-service/internal/platform/obs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type httpStatusError struct {
	Code int
	Body string
}

func (g *GeoapifyProvider) newRequest(
	ctx context.Context,
	method string,
	path string,
	query url.Values,
	body io.Reader,
) (*http.Request, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apiKey", g.apiKey)

	endpoint := g.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// do executes a single provider call. Failures are not retried.
func (g *GeoapifyProvider) do(op string, req *http.Request) (*http.Response, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(req.Context()); err != nil {
			obs.ProviderCalls.WithLabelValues(op, "throttled").Inc()
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	start := time.Now()
	resp, err := g.session.Do(req)
	obs.ProviderLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		obs.ProviderCalls.WithLabelValues(op, "error").Inc()
		return nil, err
	}

	if resp.StatusCode >= 400 {
		obs.ProviderCalls.WithLabelValues(op, fmt.Sprintf("http_%d", resp.StatusCode)).Inc()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	obs.ProviderCalls.WithLabelValues(op, "ok").Inc()
	return resp, nil
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
