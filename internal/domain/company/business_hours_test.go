package company

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

func TestWeekToModels(t *testing.T) {
	week := Week{
		"Monday":  {IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
		"tuesday": {IsOpen: false, OpenTime: "09:00", CloseTime: "17:00"},
	}

	rows, err := week.ToModels(7)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	monday := rows[time.Monday]
	assert.Equal(t, uint(7), monday.CompanyID)
	assert.True(t, monday.IsOpen)
	assert.Equal(t, "09:00", monday.OpenTime)

	tuesday := rows[time.Tuesday]
	assert.False(t, tuesday.IsOpen)
	assert.Empty(t, tuesday.OpenTime)
	assert.Empty(t, tuesday.CloseTime)

	assert.False(t, rows[time.Sunday].IsOpen)
}

func TestWeekToModelsValidation(t *testing.T) {
	week := Week{
		"monday":   {IsOpen: true, OpenTime: "17:00", CloseTime: "09:00"},
		"friday":   {IsOpen: true, OpenTime: "09:15", CloseTime: "18:00"},
		"funday":   {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		"saturday": {IsOpen: true, OpenTime: "10:00", CloseTime: "14:00"},
	}

	_, err := week.ToModels(1)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, httperr.CodeValidationFailed, be.Code)

	fields := map[string]string{}
	for _, f := range be.Fields {
		fields[f.Field] = f.Code
	}
	assert.Equal(t, "invalid_business_hours", fields["monday.closeTime"])
	assert.Equal(t, "invalid_time", fields["friday.openTime"])
	assert.Equal(t, "invalid_weekday", fields["funday"])
	assert.NotContains(t, fields, "saturday.openTime")
}

func TestFromModels(t *testing.T) {
	week := FromModels([]models.BusinessHours{
		{Weekday: int(time.Wednesday), IsOpen: true, OpenTime: "08:00", CloseTime: "12:00"},
	})

	assert.Len(t, week, 7)
	assert.Equal(t, Day{IsOpen: true, OpenTime: "08:00", CloseTime: "12:00"}, week["wednesday"])
	assert.Equal(t, Day{}, week["sunday"])
}

func TestWindowOf(t *testing.T) {
	w, ok := WindowOf(&models.BusinessHours{IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"})
	require.True(t, ok)
	assert.Equal(t, 540, w.Open)
	assert.Equal(t, 1020, w.Close)

	_, ok = WindowOf(&models.BusinessHours{IsOpen: false})
	assert.False(t, ok)
	_, ok = WindowOf(&models.BusinessHours{IsOpen: true, OpenTime: "12:00", CloseTime: "12:00"})
	assert.False(t, ok)
	_, ok = WindowOf(nil)
	assert.False(t, ok)
}

func TestNormalizeAlias(t *testing.T) {
	a, ok := NormalizeAlias("  Barber-Shop-1 ")
	assert.True(t, ok)
	assert.Equal(t, "barber-shop-1", a)

	for _, bad := range []string{"ab", "has space", "trailing-", "-lead", "ünïcode"} {
		_, ok := NormalizeAlias(bad)
		assert.False(t, ok, bad)
	}
}
