package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingOperations counts lifecycle operations by outcome.
	BookingOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salonbook",
		Name:      "booking_operations_total",
		Help:      "Booking lifecycle operations partitioned by operation and result.",
	}, []string{"operation", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "salonbook",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency partitioned by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	ReminderDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "salonbook",
		Name:      "reminder_deliveries_total",
		Help:      "Appointment reminders handled by the worker.",
	}, []string{"result"})
)

// RecordBookingOperation increments the lifecycle counter.
func RecordBookingOperation(operation, result string) {
	BookingOperations.WithLabelValues(operation, result).Inc()
}
