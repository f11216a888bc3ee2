package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "oficiogen"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Attachment pipeline metrics
var (
	AttachmentsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_accepted_total",
			Help:      "Total number of evidence photos accepted",
		},
	)

	AttachmentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attachments_rejected_total",
			Help:      "Total number of evidence photos rejected",
		},
		[]string{"reason"},
	)

	DigestsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "digests_computed_total",
			Help:      "Total number of SHA-256 digest computations",
		},
		[]string{"status"},
	)

	DigestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "digest_duration_seconds",
			Help:      "SHA-256 digest computation time distribution",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
)

// Document metrics
var (
	DocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_generated_total",
			Help:      "Total number of documents generated",
		},
		[]string{"format"},
	)

	HandoffFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handoff_failures_total",
			Help:      "Total number of failed artifact hand-offs to the outbox",
		},
	)

	BackupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Total number of backup exports and imports",
		},
		[]string{"direction"},
	)

	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_lookups_total",
			Help:      "Total number of reverse geocoding lookups",
		},
		[]string{"status"},
	)
)
