package geocache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/vetdirhq/vetdir/internal/db"
	"github.com/vetdirhq/vetdir/internal/domain"
	"github.com/vetdirhq/vetdir/internal/domain/geo"
)

var cacheKeyPrefix = domain.KeyPrefix + "geo_cache:"

// store is the consumer interface for the geocode cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// geocoder is the inner interface the cache decorates.
type geocoder interface {
	Geocode(ctx context.Context, address string) (geo.Point, error)
}

// CachedGeocoder persists resolved coordinates in the key-value store so
// lookups survive restarts and are shared across replicas. Store failures
// never fail a lookup; they fall through to the provider.
type CachedGeocoder struct {
	inner      geocoder
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a persistent caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner geocoder,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Geocode returns the cached point for the address or calls the inner client.
// Only successful resolutions are cached.
func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (geo.Point, error) {
	key := c.cacheKey(address)

	if p, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return p, nil
	}
	c.incCache("miss")

	p, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode address: %w", err)
	}

	c.putToCache(ctx, key, p)
	return p, nil
}

func (c *CachedGeocoder) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedGeocoder) cacheKey(address string) string {
	normalized := strings.ToLower(strings.TrimSpace(address))
	h := sha256.Sum256([]byte(normalized))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedGeocoder) getFromCache(ctx context.Context, key string) (geo.Point, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached coordinates", zap.String("key", key), zap.Error(err))
		}
		return geo.Point{}, false
	}
	if len(data) == 0 {
		return geo.Point{}, false
	}

	p, err := geo.ParsePoint(string(data))
	if err != nil {
		c.logger.Warn("Failed to parse cached coordinates", zap.String("key", key), zap.Error(err))
		return geo.Point{}, false
	}
	return p, true
}

func (c *CachedGeocoder) putToCache(ctx context.Context, key string, p geo.Point) {
	if err := c.store.SetWithTTL(ctx, key, []byte(p.String()), c.ttl); err != nil {
		c.logger.Warn("Failed to cache coordinates", zap.String("key", key), zap.Error(err))
	}
}
