package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/customer/available-slots", "200", 0.02)
	RecordHTTPRequest("GET", "/api/customer/available-slots", "200", 0.03)
	RecordHTTPRequest("GET", "/api/customer/available-slots", "400", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/customer/available-slots", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/customer/available-slots", "400")))
	assert.Equal(t, 1, testutil.CollectAndCount(HTTPRequestDuration))
}

func TestRecordBookingCounters(t *testing.T) {
	BookingsCreatedTotal.Reset()
	BookingTransitionsTotal.Reset()
	BookingConflictsTotal.Reset()

	RecordBookingCreated("CONFIRMED")
	RecordBookingCreated("PENDING")
	RecordTransition("CANCELLED", "customer")
	RecordConflict("slot_busy")
	RecordConflict("slot_busy")

	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("CONFIRMED")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingTransitionsTotal.WithLabelValues("CANCELLED", "customer")))
	assert.Equal(t, float64(2), testutil.ToFloat64(BookingConflictsTotal.WithLabelValues("slot_busy")))
}

func TestRecordSlotCache(t *testing.T) {
	SlotCacheTotal.Reset()

	RecordSlotCache(true)
	RecordSlotCache(false)
	RecordSlotCache(false)

	assert.Equal(t, float64(1), testutil.ToFloat64(SlotCacheTotal.WithLabelValues("hit")))
	assert.Equal(t, float64(2), testutil.ToFloat64(SlotCacheTotal.WithLabelValues("miss")))
}
