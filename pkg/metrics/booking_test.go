package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBookingMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.IncReservation("confirmed")
	m.IncReservation("confirmed")
	m.IncReservation("unavailable")
	m.IncTxConflict()
	m.ObserveCheck("check", 50*time.Millisecond)

	if got := testutil.ToFloat64(m.reservations.WithLabelValues("confirmed")); got != 2 {
		t.Fatalf("confirmed count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.reservations.WithLabelValues("unavailable")); got != 1 {
		t.Fatalf("unavailable count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.conflicts); got != 1 {
		t.Fatalf("conflict count = %v, want 1", got)
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.IncReservation("confirmed")
	m.IncTxConflict()
	m.ObserveCheck("check", time.Second)

	empty := NewBookingMetrics(nil)
	empty.IncReservation("")
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("POST", "/api/v1/reservations", 201, 10*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/reservations", 409, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/reservations", "201")); got != 1 {
		t.Fatalf("201 count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/reservations", "409")); got != 1 {
		t.Fatalf("409 count = %v, want 1", got)
	}
}
