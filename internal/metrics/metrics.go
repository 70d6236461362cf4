package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_bookings_created_total",
			Help: "Bookings created, by initial status",
		},
		[]string{"status"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Booking status changes after creation",
		},
		[]string{"to", "actor"},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Rejected booking attempts caused by concurrent or overlapping requests",
		},
		[]string{"reason"},
	)

	SlotCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_slot_cache_total",
			Help: "Slot cache lookups",
		},
		[]string{"result"},
	)

	RemindersSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_reminders_total",
			Help: "Reminder emails by outcome",
		},
		[]string{"status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(status string) {
	BookingsCreatedTotal.WithLabelValues(status).Inc()
}

func RecordTransition(to, actor string) {
	BookingTransitionsTotal.WithLabelValues(to, actor).Inc()
}

// RecordConflict takes "slot_busy" or "time_conflict".
func RecordConflict(reason string) {
	BookingConflictsTotal.WithLabelValues(reason).Inc()
}

func RecordSlotCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	SlotCacheTotal.WithLabelValues(result).Inc()
}

func RecordReminder(status string) {
	RemindersSentTotal.WithLabelValues(status).Inc()
}
