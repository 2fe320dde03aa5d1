package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and geocoding Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdir",
			Name:      "searches_total",
			Help:      "Total number of business searches",
		},
		[]string{"sort"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vetdir",
			Name:      "search_duration_seconds",
			Help:      "Business search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"sort"},
	)

	GeocodeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdir",
			Name:      "geocode_requests_total",
			Help:      "Total geocoding provider requests",
		},
		[]string{"status"}, // "success" / "no_results" / "error"
	)

	GeocodeRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vetdir",
			Name:      "geocode_request_duration_seconds",
			Help:      "Geocoding provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	GeocodeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdir",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	GeocodeStoreCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdir",
			Name:      "geocode_store_cache_total",
			Help:      "Persistent geocode cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	GeocodeFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vetdir",
			Name:      "geocode_fallbacks_total",
			Help:      "Searches that degraded to text location matching after a geocoding failure",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(GeocodeRequestsTotal)
	prometheus.MustRegister(GeocodeRequestDuration)
	prometheus.MustRegister(GeocodeCacheTotal)
	prometheus.MustRegister(GeocodeStoreCacheTotal)
	prometheus.MustRegister(GeocodeFallbacksTotal)
	searchMetricsRegistered = true
}
