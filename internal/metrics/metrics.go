// Package metrics exposes Prometheus instrumentation for the
// recommendation worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendations_generated_total",
		Help: "Ranked lists produced, by domain.",
	}, []string{"domain"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_cache_hits_total",
		Help: "Cache lookups served without recomputation.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_cache_misses_total",
		Help: "Cache lookups that fell through to the engine.",
	})

	ItemErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_item_errors_total",
		Help: "Candidates dropped during a pipeline stage, by domain and stage.",
	}, []string{"domain", "stage"})

	BatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_batch_duration_seconds",
		Help:    "Wall time of a full precompute run.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	BatchUsersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recommendation_batch_users_failed_total",
		Help: "Users whose precompute failed during batch runs.",
	})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_events_published_total",
		Help: "Events published on the internal bus, by topic.",
	}, []string{"topic"})
)
