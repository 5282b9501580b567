package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/krishaksaarthi/saarthi-backend/internal/observability"
	"github.com/krishaksaarthi/saarthi-backend/internal/weather"
)

// ErrMissingAPIKey is returned at construction when no credential is
// configured. The service refuses to operate rather than fail per-request.
var ErrMissingAPIKey = errors.New("tomorrow.io api key is not configured")

// DefaultBaseURL is the Tomorrow.io forecast endpoint.
const DefaultBaseURL = "https://api.tomorrow.io/v4/weather/forecast"

// TomorrowIOProvider implements weather.Provider against the Tomorrow.io
// forecast API.
type TomorrowIOProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	metrics *observability.Metrics
}

// NewTomorrowIOProvider creates the provider. Fails fast when apiKey is
// empty.
func NewTomorrowIOProvider(client *http.Client, apiKey string, metrics *observability.Metrics) (*TomorrowIOProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tomorrowio",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &TomorrowIOProvider{
		name:    "tomorrowio",
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
		metrics: metrics,
	}, nil
}

// WithBaseURL points the provider at a different endpoint. Used by tests.
func (p *TomorrowIOProvider) WithBaseURL(base string) *TomorrowIOProvider {
	p.baseURL = base
	return p
}

func (p *TomorrowIOProvider) Name() string {
	return p.name
}

// FetchForecast requests the metric-unit forecast for a coordinate. The
// location parameter is "{lat},{lon}" as the upstream expects.
func (p *TomorrowIOProvider) FetchForecast(ctx context.Context, coord weather.Coordinate) (weather.RawForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("location", fmt.Sprintf("%g,%g", coord.Latitude, coord.Longitude))
		values.Set("units", "metric")
		values.Set("apikey", p.apiKey)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	start := time.Now()
	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	p.metrics.UpstreamDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.UpstreamRequests.WithLabelValues(p.name, "error").Inc()
		return weather.RawForecast{}, err
	}
	defer resp.Body.Close()

	var payload weather.RawForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		p.metrics.UpstreamRequests.WithLabelValues(p.name, "error").Inc()
		return weather.RawForecast{}, fmt.Errorf("decode forecast response: %w", err)
	}

	p.metrics.UpstreamRequests.WithLabelValues(p.name, "success").Inc()
	return payload, nil
}
