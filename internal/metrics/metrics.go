// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Activity event outcomes
const (
	ActivityRecorded = "recorded"
	ActivityDropped  = "dropped"
	ActivityFailed   = "failed"
)

// Work-order number sources
const (
	NumberSourceSequence = "sequence"
	NumberSourceFallback = "fallback"
	NumberSourceExplicit = "explicit"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ActivityEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorder_activity_events_total",
			Help: "Activity log events by outcome",
		},
		[]string{"result"},
	)

	ActivityQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workorder_activity_queue_depth",
			Help: "Activity log events waiting to be written",
		},
	)

	PDFRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "workorder_pdf_render_seconds",
			Help:    "Work-order PDF render latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"engine", "result"},
	)

	NumbersGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorder_numbers_generated_total",
			Help: "Work-order numbers assigned by source",
		},
		[]string{"source"},
	)

	VendorSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workorder_erp_vendor_sync_total",
			Help: "Vendors processed by the ERP import job",
		},
		[]string{"result"},
	)
)
