package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/metrics"
)

const defaultTimeout = 5 * time.Second

// Config holds the geocoding provider settings.
type Config struct {
	APIKey  string
	BaseURL string
	Region  string // result bias, e.g. "us"
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client resolves free-text addresses against a Google-compatible geocoding
// endpoint. Every call is bounded by the configured timeout; callers degrade
// to text matching on any error, so no retries happen here.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	region     string
	logger     *zap.Logger
}

// NewClient creates a geocoding client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		region:     cfg.Region,
		logger:     logger,
	}
}

// apiResponse is the provider's JSON envelope.
type apiResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves a free-text address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (geo.Point, error) {
	if address == "" {
		return geo.Point{}, domain.ErrNoGeocodeResults
	}

	params := url.Values{}
	params.Set("address", address)
	if c.region != "" {
		params.Set("region", c.region)
	}

	resp, err := c.call(ctx, params)
	if err != nil {
		return geo.Point{}, err
	}

	p := geo.Point{
		Lat: resp.Results[0].Geometry.Location.Lat,
		Lng: resp.Results[0].Geometry.Location.Lng,
	}
	if !p.Valid() {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return geo.Point{}, fmt.Errorf("provider returned invalid coordinates %s: %w",
			p, domain.ErrGeocodeUnavailable)
	}
	return p, nil
}

// ReverseGeocode resolves coordinates to a formatted address.
func (c *Client) ReverseGeocode(ctx context.Context, p geo.Point) (string, error) {
	params := url.Values{}
	params.Set("latlng", p.String())

	resp, err := c.call(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.Results[0].FormattedAddress, nil
}

func (c *Client) call(ctx context.Context, params url.Values) (*apiResponse, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	metrics.GeocodeRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("geocode request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrGeocodeUnavailable, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("geocode provider returned non-200", zap.Int("status", httpResp.StatusCode))
		return nil, fmt.Errorf("%w: http %d", domain.ErrGeocodeUnavailable, httpResp.StatusCode)
	}

	var resp apiResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrGeocodeUnavailable, err)
	}

	switch resp.Status {
	case "OK":
		if len(resp.Results) == 0 {
			metrics.GeocodeRequestsTotal.WithLabelValues("no_results").Inc()
			return nil, domain.ErrNoGeocodeResults
		}
		metrics.GeocodeRequestsTotal.WithLabelValues("success").Inc()
		return &resp, nil
	case "ZERO_RESULTS":
		metrics.GeocodeRequestsTotal.WithLabelValues("no_results").Inc()
		return nil, domain.ErrNoGeocodeResults
	default:
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("geocode provider error",
			zap.String("status", resp.Status),
			zap.String("message", resp.ErrorMessage),
		)
		return nil, fmt.Errorf("%w: provider status %s", domain.ErrGeocodeUnavailable, resp.Status)
	}
}
