package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recommendation engine Prometheus metrics.
var (
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinema",
			Name:      "recommend_duration_seconds",
			Help:      "Recommendation query duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
		[]string{"op"},
	)

	QueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinema",
			Name:      "recommend_errors_total",
			Help:      "Total recommendation query errors",
		},
		[]string{"op", "error_type"},
	)

	RecommendCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinema",
			Name:      "recommend_cache_total",
			Help:      "Recommendation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CatalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cinema",
			Name:      "catalog_items",
			Help:      "Number of movies in the loaded catalog",
		},
	)

	CacheBreakerState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cinema",
			Name:      "cache_breaker_state",
			Help:      "Result cache circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(QueryErrorsTotal)
	prometheus.MustRegister(RecommendCacheTotal)
	prometheus.MustRegister(CatalogItems)
	prometheus.MustRegister(CacheBreakerState)
	engineMetricsRegistered = true
}

// ObserveQuery records the duration of op since start and counts a failure if errType is set.
func ObserveQuery(op string, start time.Time, errType string) {
	QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if errType != "" {
		QueryErrorsTotal.WithLabelValues(op, errType).Inc()
	}
}
