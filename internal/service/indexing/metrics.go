package indexing

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reloadsTotal counts index reloads.
	// Labels: reason (startup, admin, watch), outcome (ok, error)
	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "namematch",
		Subsystem: "index",
		Name:      "reloads_total",
		Help:      "Total index reloads by reason and outcome",
	}, []string{"reason", "outcome"})

	reloadDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "namematch",
		Subsystem: "index",
		Name:      "reload_duration_seconds",
		Help:      "Time to load entries and build a new index snapshot",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	})

	indexEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "namematch",
		Subsystem: "index",
		Name:      "entries",
		Help:      "Number of entries in the active index snapshot",
	})
)
