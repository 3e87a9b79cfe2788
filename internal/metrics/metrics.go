package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riverwqi_evaluations_total",
			Help: "Total WQI evaluations by mode",
		},
		[]string{"mode"},
	)

	InvalidDistancesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "riverwqi_invalid_distances_total",
			Help: "Total distances rejected as invalid input",
		},
	)

	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riverwqi_reports_total",
			Help: "Total reports rendered by format",
		},
		[]string{"format"},
	)

	PDFFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "riverwqi_pdf_fallbacks_total",
			Help: "Total PDF reports that fell back to plain text",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riverwqi_http_request_duration_seconds",
			Help:    "Dashboard request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)
