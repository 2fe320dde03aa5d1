package geocode

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
	"github.com/vetdirhq/vetdir/internal/metrics"
)

// geocoder is the inner interface the cache decorates.
type geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

// Cached memoizes successful geocode lookups in a bounded in-process LRU with
// a fixed TTL. Only successes are cached; failures always hit the provider so
// transient outages recover immediately. The search core never depends on
// this cache for correctness.
type Cached struct {
	inner  geocoder
	cache  *expirable.LRU[string, geo.Point]
	logger *zap.Logger
}

// NewCached creates a caching decorator over a geocoding client.
func NewCached(inner geocoder, size int, ttl time.Duration, logger *zap.Logger) *Cached {
	if size <= 0 {
		size = 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		inner:  inner,
		cache:  expirable.NewLRU[string, geo.Point](size, nil, ttl),
		logger: logger,
	}
}

// Geocode returns the cached point for the address or falls through to the provider.
func (c *Cached) Geocode(ctx context.Context, address string) (geo.Point, error) {
	key := cacheKey(address)
	if p, ok := c.cache.Get(key); ok {
		metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
		return p, nil
	}
	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	p, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return geo.Point{}, err
	}

	c.cache.Add(key, p)
	c.logger.Debug("geocode result cached", zap.String("address", address))
	return p, nil
}

// healthProbeAddress is a stable, always-geocodable address. HealthCheck
// probes with it; subsequent checks are cache hits until the TTL lapses.
const healthProbeAddress = "1600 Pennsylvania Avenue NW, Washington, DC"

// HealthCheck verifies the geocoding provider is reachable. A no-results
// answer still proves reachability.
func (c *Cached) HealthCheck(ctx context.Context) error {
	_, err := c.Geocode(ctx, healthProbeAddress)
	if errors.Is(err, domain.ErrNoGeocodeResults) {
		return nil
	}
	return err
}

// Invalidate drops a single cached address.
func (c *Cached) Invalidate(address string) {
	c.cache.Remove(cacheKey(address))
}

// Purge drops the entire cache.
func (c *Cached) Purge() {
	c.cache.Purge()
}

func cacheKey(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
