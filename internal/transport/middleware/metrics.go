package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	panicsRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "namematch",
		Subsystem: "http",
		Name:      "panics_recovered_total",
		Help:      "Handler panics turned into 500 responses",
	})

	requestsRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "namematch",
		Subsystem: "http",
		Name:      "requests_rate_limited_total",
		Help:      "Requests rejected with 429 by the per-client rate limiter",
	})
)
