package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ClassificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrain_classifications_total",
		Help: "Total classifications served, by category and tier",
	}, []string{"category", "tier"})
	ClassificationErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "terrain_classification_errors_total",
		Help: "Total classification requests that failed",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "terrain_cache_hits_total",
		Help: "Total classification cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "terrain_cache_misses_total",
		Help: "Total classification cache misses",
	})
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrain_provider_requests_total",
		Help: "Total upstream provider requests",
	}, []string{"provider"})
	ProviderFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrain_provider_failures_total",
		Help: "Total upstream provider failures (degraded to defaults)",
	}, []string{"provider"})
	ProviderDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terrain_provider_duration_ms",
		Help:    "Upstream provider call duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000},
	}, []string{"provider"})
	EstimatedInputsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "terrain_estimated_inputs_total",
		Help: "Classifications served with a provider default substituted for real data",
	}, []string{"provider"})
)

func init() {
	prometheus.MustRegister(
		ClassificationsTotal,
		ClassificationErrorsTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		ProviderRequestsTotal,
		ProviderFailuresTotal,
		ProviderDurationMs,
		EstimatedInputsTotal,
	)
}

// Serve поднимает отдельный HTTP listener с /metrics
func Serve(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
