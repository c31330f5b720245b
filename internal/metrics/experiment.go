package metrics

import "github.com/prometheus/client_golang/prometheus"

// Experiment Prometheus metrics: per-variant query traffic and feedback outcomes.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragtrial",
			Name:      "queries_total",
			Help:      "Total served queries by experiment arm",
		},
		[]string{"variant"},
	)

	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ragtrial",
			Name:      "query_duration_seconds",
			Help:      "End-to-end query orchestration duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"variant"},
	)

	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ragtrial",
			Name:      "feedback_total",
			Help:      "Accepted feedback submissions by declared winner",
		},
		[]string{"winner"},
	)

	IngestedChunksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ragtrial",
			Name:      "ingested_chunks_total",
			Help:      "Total chunks written to the vector store",
		},
	)

	GenerationFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ragtrial",
			Name:      "generation_fallbacks_total",
			Help:      "Variant B answers that fell back to context concatenation",
		},
	)
)

var expMetricsRegistered bool

// RegisterExperimentMetrics registers Prometheus experiment metrics. Must be called once from main.
func RegisterExperimentMetrics() {
	if expMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QueryDuration)
	prometheus.MustRegister(FeedbackTotal)
	prometheus.MustRegister(IngestedChunksTotal)
	prometheus.MustRegister(GenerationFallbacksTotal)
	expMetricsRegistered = true
}
