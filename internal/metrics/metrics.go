package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "findim"

var (
	// Builds counts date dimension builds by result (ok|error).
	Builds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_builds_total",
		Help:      "Date dimension builds by result.",
	}, []string{"result"})

	// BuildDuration observes date dimension build latency.
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calendar_build_duration_seconds",
		Help:      "Date dimension build latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// SeriesFetches counts series fetches by series and result (ok|empty|unavailable|error).
	SeriesFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "series_fetches_total",
		Help:      "Time series fetches by series and result.",
	}, []string{"series", "result"})

	// Exports counts table exports by kind (calendar|series), format and result.
	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Table exports by kind, format and result.",
	}, []string{"kind", "format", "result"})

	// HTTPRequests counts served requests by method, route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route template.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

// ObserveBuild records the outcome and latency of one build.
func ObserveBuild(start time.Time, err error) {
	BuildDuration.Observe(time.Since(start).Seconds())
	Builds.WithLabelValues(result(err)).Inc()
}

// ObserveRequest records one served HTTP request. Unmatched routes are
// reported as "unmatched" to keep label cardinality bounded.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
