// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sakura_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sakura_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sakura_db_query_duration_seconds",
			Help:    "Duration of SQLite operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sakura_db_query_errors_total",
			Help: "SQLite operations that returned an unexpected error",
		},
		[]string{"operation"},
	)

	VideoViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sakura_video_views_total",
			Help: "Video detail fetches that incremented a view counter",
		},
	)

	CommentsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sakura_comments_published_total",
			Help: "Comments published, by kind (root or reply)",
		},
		[]string{"kind"},
	)

	CollectionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sakura_collection_changes_total",
			Help: "Collection adds and removes",
		},
		[]string{"action"},
	)

	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sakura_auth_events_total",
			Help: "Registrations, logins and token rejections",
		},
		[]string{"event"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveQuery records a store operation; unexpected errors are counted separately.
func ObserveQuery(op string, start time.Time, failed bool) {
	DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if failed {
		DBQueryErrors.WithLabelValues(op).Inc()
	}
}
