package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the scheduling API
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Booking Metrics
	ReservationsCreatedTotal prometheus.Counter
	CapacityConflictsTotal   prometheus.Counter
	FlightLockWaitDuration   prometheus.Histogram

	// Notification Metrics
	NotificationsEnqueuedTotal prometheus.Counter
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tower_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tower_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tower_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		ReservationsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tower_reservations_created_total",
				Help: "Total reservations admitted past the capacity check",
			},
		),
		CapacityConflictsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tower_capacity_conflicts_total",
				Help: "Total bookings rejected because the flight was full",
			},
		),
		FlightLockWaitDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tower_flight_lock_wait_seconds",
				Help:    "Time spent waiting for the per-flight booking lock",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
			},
		),

		NotificationsEnqueuedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tower_notifications_enqueued_total",
				Help: "Total booked events put on the notification stream",
			},
		),
	}
}
