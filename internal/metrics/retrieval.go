package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and synthesis Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "retrieval_requests_total",
			Help:      "Total number of retrieval core searches",
		},
		[]string{"domain", "status"}, // domain: shoes/players/rules/glossary/drills
	)

	RetrievalCandidates = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "assist",
			Name:      "retrieval_candidates",
			Help:      "Candidate count after filtering, per domain",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"domain"},
	)

	SynthesisRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "assist",
			Name:      "synthesis_requests_total",
			Help:      "Total number of LLM synthesis calls",
		},
		[]string{"agent", "status"}, // agent: coach/advisor/judge
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers retrieval metrics. Must be called once
// from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalCandidates)
	prometheus.MustRegister(SynthesisRequestsTotal)
	retrievalMetricsRegistered = true
}
