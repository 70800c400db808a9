package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics records reservation and availability outcomes.
type BookingMetrics struct {
	reservations *prometheus.CounterVec
	conflicts    prometheus.Counter
	checkTime    *prometheus.HistogramVec
}

// NewBookingMetrics registers the booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	reservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_requests_total",
		Help: "Reservation creation attempts by outcome.",
	}, []string{"outcome"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reservation_tx_conflicts_total",
		Help: "Reservation transactions retried after a serialization conflict.",
	})
	checkTime := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "availability_check_duration_seconds",
		Help:    "Duration of availability checks in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(reservations, conflicts, checkTime)
	return &BookingMetrics{
		reservations: reservations,
		conflicts:    conflicts,
		checkTime:    checkTime,
	}
}

// IncReservation increments the reservation counter for the given outcome.
func (b *BookingMetrics) IncReservation(outcome string) {
	if b == nil || b.reservations == nil {
		return
	}
	b.reservations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncTxConflict increments the serialization-conflict counter.
func (b *BookingMetrics) IncTxConflict() {
	if b == nil || b.conflicts == nil {
		return
	}
	b.conflicts.Inc()
}

// ObserveCheck records the duration of a named availability operation.
func (b *BookingMetrics) ObserveCheck(operation string, duration time.Duration) {
	if b == nil || b.checkTime == nil {
		return
	}
	b.checkTime.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
