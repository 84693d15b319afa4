// Package metrics registers the prometheus collectors for the generation
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generation outcomes
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftforge_generations_total",
			Help: "Total number of generation requests by terminal outcome",
		},
		[]string{"outcome"},
	)

	GenerationAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "draftforge_generation_attempts",
			Help:    "Attempts spent per generation request",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "draftforge_generation_duration_seconds",
			Help:    "Wall time of one generation request",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Provider behaviour
	ProviderRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftforge_provider_retries_total",
			Help: "Provider call retries by provider name",
		},
		[]string{"provider"},
	)

	// Cache behaviour
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftforge_cache_hits_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)

	// Validation behaviour
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draftforge_validation_failures_total",
			Help: "Validation checker failures by checker name",
		},
		[]string{"checker"},
	)
)
