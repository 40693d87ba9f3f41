package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// matchRequestsTotal counts matching requests by outcome.
	// Labels: method (exact, exact-no-author, exact-multiple, approximate, no-match),
	// outcome (match, ambiguous, candidates, none, error)
	matchRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "namematch",
		Subsystem: "matching",
		Name:      "requests_total",
		Help:      "Total matching requests by method and outcome",
	}, []string{"method", "outcome"})

	// matchDurationSeconds measures pipeline time, excluding transport.
	matchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "namematch",
		Subsystem: "matching",
		Name:      "duration_seconds",
		Help:      "Matching pipeline duration",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
)

func recordOutcome(r *Result) {
	matchRequestsTotal.WithLabelValues(r.Method.String(), outcomeOf(r)).Inc()
}

func outcomeOf(r *Result) string {
	switch {
	case r.Error:
		return "error"
	case r.Match != nil:
		return "match"
	case r.IsAmbiguous():
		return "ambiguous"
	case len(r.Candidates) > 0:
		return "candidates"
	}
	return "none"
}
