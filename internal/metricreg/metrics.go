package metricreg

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LowSampleTotal counts low-sample verdicts by metric.
	LowSampleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geodash_low_sample_total",
		Help: "Total number of metric values flagged as low-sample",
	}, []string{"metric"})

	// UnknownMetricTotal counts lookups of metrics missing from the registry.
	UnknownMetricTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geodash_unknown_metric_total",
		Help: "Total number of lookups of unregistered metrics",
	})
)
