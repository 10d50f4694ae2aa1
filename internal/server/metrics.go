package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DecodeFallbacksTotal counts filter parameters dropped while decoding.
	DecodeFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geodash_query_decode_fallbacks_total",
		Help: "Total number of malformed filter parameters ignored",
	}, []string{"param"})

	// RenderErrorsTotal counts failed page renders by template.
	RenderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geodash_render_errors_total",
		Help: "Total number of failed page renders",
	}, []string{"template"})

	// RequestDuration measures request latency by route pattern.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geodash_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)
