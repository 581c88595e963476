package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by statement kind.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// CacheRequests counts cache lookups by key family and outcome (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_cache_requests_total",
		Help: "Total cache lookups by key family and outcome",
	}, []string{"family", "outcome"})

	// PostViews counts recorded post view increments.
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total number of post view increments recorded",
	})

	// ContactMessagesReceived counts contact form submissions accepted.
	ContactMessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_contact_messages_total",
		Help: "Total number of contact messages received",
	})

	// EmailSendFailures counts outbound notification emails that failed to send.
	EmailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_email_send_failures_total",
		Help: "Total number of notification emails that failed to send",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
