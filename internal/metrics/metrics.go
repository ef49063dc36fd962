// Package metrics holds the pipeline Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// LLM and pipeline Prometheus metrics.
var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "llm_requests_total",
			Help:      "Total number of LLM completion requests",
		},
		[]string{"provider", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "brandlens",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM completion request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "model"},
	)

	LLMTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "llm_tokens_total",
			Help:      "Total LLM tokens consumed",
		},
		[]string{"provider", "model"},
	)

	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "citation_classifications_total",
			Help:      "Citation classifications by resolving tier",
		},
		[]string{"source"},
	)

	ClassificationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "citation_cache_total",
			Help:      "Classification cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ConsolidatedCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "consolidated_cache_total",
			Help:      "Consolidated-analysis cache hits and misses",
		},
		[]string{"result"},
	)

	RecordsProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "records_processed_total",
			Help:      "Records processed by outcome",
		},
		[]string{"outcome"}, // "succeeded" / "failed" / "skipped"
	)

	SentimentProviderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "brandlens",
			Name:      "sentiment_provider_total",
			Help:      "Sentiment provider attempts by provider and status",
		},
		[]string{"provider", "status"},
	)
)

// RegisterPipelineMetrics registers all pipeline collectors. Explicit, no init().
func RegisterPipelineMetrics() {
	prometheus.MustRegister(
		LLMRequestsTotal,
		LLMRequestDuration,
		LLMTokensTotal,
		ClassificationsTotal,
		ClassificationCacheTotal,
		ConsolidatedCacheTotal,
		RecordsProcessedTotal,
		SentimentProviderTotal,
	)
}
