package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomify_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "roomify_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	bookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomify_bookings_total",
		Help: "Booking creation attempts by result",
	}, []string{"result"})

	statusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roomify_booking_status_changes_total",
		Help: "Booking status transitions by target status",
	}, []string{"to"})
)

// ObserveHTTPRequest records one handled HTTP request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveBooking records a booking creation attempt (created, conflict, error).
func ObserveBooking(result string) {
	bookingsTotal.WithLabelValues(result).Inc()
}

// ObserveStatusChange records a successful booking status transition.
func ObserveStatusChange(to string) {
	statusChangesTotal.WithLabelValues(to).Inc()
}
