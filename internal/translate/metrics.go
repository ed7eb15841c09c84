package translate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Cache metrics
	translationCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duetchat_translation_cache_lookups_total",
			Help: "Translation cache lookups by result (hit/miss)",
		},
		[]string{"result"},
	)

	translationCacheWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duetchat_translation_cache_write_failures_total",
			Help: "Cache writes that failed after a successful provider call",
		},
	)

	// Provider metrics
	providerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duetchat_translation_provider_requests_total",
			Help: "Total number of translation provider requests",
		},
		[]string{"status"},
	)

	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duetchat_translation_provider_request_duration_seconds",
			Help:    "Duration of translation provider requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"status"},
	)

	// Detection metrics
	languageDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duetchat_language_detections_total",
			Help: "Language detections by method (heuristic/provider)",
		},
		[]string{"method"},
	)
)
