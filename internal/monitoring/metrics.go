package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saac_http_requests_total",
			Help: "Total HTTP requests by route and status class",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saac_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saac_db_query_duration_seconds",
			Help:    "Database query duration by operation",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
		[]string{"op"},
	)

	eventsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saac_events_created_total",
			Help: "Total events submitted",
		},
	)

	eventDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saac_event_decisions_total",
			Help: "Total approve/reject decisions on events",
		},
		[]string{"decision"},
	)

	reviewsAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saac_event_reviews_total",
			Help: "Total review comments posted",
		},
	)
)

// ObserveRequest records one completed HTTP request.
func ObserveRequest(route, method, status string, seconds float64) {
	httpRequests.WithLabelValues(route, method, status).Inc()
	httpDuration.WithLabelValues(route).Observe(seconds)
}

// ObserveQuery records one database operation.
func ObserveQuery(op string, seconds float64) {
	queryDuration.WithLabelValues(op).Observe(seconds)
}

// CountEventCreated increments the event submission counter.
func CountEventCreated() {
	eventsCreated.Inc()
}

// CountDecision increments the decision counter for "accepted" or "rejected".
func CountDecision(decision string) {
	eventDecisions.WithLabelValues(decision).Inc()
}

// CountReview increments the review comment counter.
func CountReview() {
	reviewsAdded.Inc()
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
