package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and rerank Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydp",
			Name:      "search_requests_total",
			Help:      "Total number of hybrid search requests",
		},
		[]string{"status"},
	)

	SearchStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ydp",
			Name:      "search_stage_duration_seconds",
			Help:      "Per-stage duration of the search pipeline",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"stage"}, // "embed", "retrieve", "filter", "rerank"
	)

	SearchCandidatesFetched = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "ydp",
			Name:      "search_candidates_fetched",
			Help:      "Number of candidates returned by the vector index per search",
			Buckets:   []float64{0, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	JudgeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydp",
			Name:      "judge_requests_total",
			Help:      "Total number of reranking judge calls",
		},
		[]string{"model", "status"},
	)

	JudgeFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydp",
			Name:      "judge_fallbacks_total",
			Help:      "Searches served with vector-order fallback after a judge failure",
		},
		[]string{"reason"}, // "schema" / "transport"
	)

	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ydp",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"status"}, // "ok" / "no_persona" / "error"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchStageDuration)
	prometheus.MustRegister(SearchCandidatesFetched)
	prometheus.MustRegister(JudgeRequestsTotal)
	prometheus.MustRegister(JudgeFallbacksTotal)
	prometheus.MustRegister(RecommendRequestsTotal)
	searchMetricsRegistered = true
}
