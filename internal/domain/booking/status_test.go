package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		act     func(*models.Booking, time.Time) error
		want    Status
		wantErr bool
	}{
		{"cancel pending", StatusPending, cancelAsCustomer, StatusCancelled, false},
		{"cancel confirmed", StatusConfirmed, cancelAsCustomer, StatusCancelled, false},
		{"cancel cancelled", StatusCancelled, cancelAsCustomer, StatusCancelled, true},
		{"cancel completed", StatusCompleted, cancelAsCustomer, StatusCompleted, true},
		{"complete confirmed", StatusConfirmed, Complete, StatusCompleted, false},
		{"complete pending", StatusPending, Complete, StatusPending, true},
		{"complete cancelled", StatusCancelled, Complete, StatusCancelled, true},
		{"confirm pending", StatusPending, Confirm, StatusConfirmed, false},
		{"confirm confirmed", StatusConfirmed, Confirm, StatusConfirmed, true},
		{"confirm completed", StatusCompleted, Confirm, StatusCompleted, true},
	}

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &models.Booking{Status: string(tt.from)}

			err := tt.act(b, now)
			if tt.wantErr {
				assert.True(t, httperr.IsBusiness(err, "invalid_state"))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, string(tt.want), b.Status)
		})
	}
}

func cancelAsCustomer(b *models.Booking, now time.Time) error {
	return Cancel(b, CancelledByCustomer, now)
}

func TestCancelStampsActor(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	require.NoError(t, Cancel(b, CancelledByEmployee, now))
	assert.Equal(t, CancelledByEmployee, b.CancelledBy)
	require.NotNil(t, b.CancelledAt)
	assert.True(t, b.CancelledAt.Equal(now))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus(false))
	assert.Equal(t, StatusPending, InitialStatus(true))
	assert.True(t, StatusPending.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.True(t, StatusCompleted.IsTerminal())
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "booking:42:2026-03-02", LockKey(42, "2026-03-02"))
}
