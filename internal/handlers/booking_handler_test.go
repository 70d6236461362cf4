package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/infra/cache"
	"github.com/BruksfildServices01/booking-api/internal/infra/lock"
	infraRepo "github.com/BruksfildServices01/booking-api/internal/infra/repository"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/models"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
)

func bookingEnv(t *testing.T) *env {
	e, pub, sec := newEnv(t)

	repo := infraRepo.NewBookingGormRepository(e.db)
	h := NewBookingHandler(BookingUseCases{
		Slots:          ucBooking.NewGetAvailableSlots(repo, cache.Noop{}),
		Create:         ucBooking.NewCreateBooking(repo, lock.Noop{}, cache.Noop{}, e.audit, time.Second),
		CancelCustomer: ucBooking.NewCancelByCustomer(repo, cache.Noop{}, e.audit),
		ChangeStatus:   ucBooking.NewChangeBookingStatus(repo, cache.Noop{}, e.audit),
		ListCustomer:   ucBooking.NewListCustomerBookings(repo),
		ListCompany:    ucBooking.NewListCompanyBookings(repo),
	})

	pub.GET("/customer/available-slots", h.AvailableSlots)
	sec.POST("/customer/bookings", h.Create)
	sec.GET("/customer/bookings", h.ListMine)
	sec.PUT("/customer/bookings/:id/cancel", h.CancelMine)

	staff := sec.Group("/employee/:id/bookings/:bookingId",
		middleware.RequireRole(models.RoleOwner, models.RoleEmployee))
	staff.PUT("/cancel", h.Cancel)
	staff.PUT("/complete", h.Complete)
	staff.PUT("/confirm", h.Confirm)

	owner := sec.Group("/company", middleware.RequireOwner())
	owner.GET("/bookings", h.ListCompany)
	owner.GET("/bookings/export", h.Export)

	return e
}

// bookingDay is a week ahead so notice rules never interfere.
func bookingDay() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func slotsPath(w world, date string) string {
	return "/api/customer/available-slots?employeeId=" + itoa(w.employee.ID) +
		"&workId=" + itoa(w.work.ID) + "&date=" + date
}

func starts(slots ucBooking.AvailableSlots) []string {
	out := make([]string, 0, len(slots.Slots))
	for _, s := range slots.Slots {
		out = append(out, s.Start)
	}
	return out
}

func TestBookingFlow(t *testing.T) {
	e := bookingEnv(t)
	world := seedWorld(t, e.db)
	day := bookingDay()
	customer := e.tokenFor(t, &world.customer)

	w := e.do(http.MethodGet, slotsPath(world, day), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	before := decode[ucBooking.AvailableSlots](t, w)
	assert.Equal(t, day, before.Date)
	assert.Len(t, before.Slots, 17) // 09:00 to 17:00 every half hour
	assert.Contains(t, starts(before), "10:00")

	ten, err := slot.Index("10:00")
	require.NoError(t, err)

	w = e.do(http.MethodPost, "/api/customer/bookings", customer, obj{
		"employeeId": world.employee.ID, "workId": world.work.ID,
		"bookingDate": day, "startOnSlot": ten, "notes": "  first visit ",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[models.Booking](t, w)
	assert.Equal(t, "CONFIRMED", created.Status)
	assert.Equal(t, "first visit", created.Notes)
	assert.Equal(t, 60, created.DurationMinutes())

	// the same hour is gone for everyone
	other := models.User{Name: "Dora", Email: "dora@example.com", Role: models.RoleCustomer}
	require.NoError(t, e.db.Create(&other).Error)

	w = e.do(http.MethodPost, "/api/customer/bookings", e.tokenFor(t, &other), obj{
		"employeeId": world.employee.ID, "workId": world.work.ID,
		"bookingDate": day, "startOnSlot": ten + 1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "time_conflict", errorOf(t, w).Code)

	w = e.do(http.MethodGet, slotsPath(world, day), "", nil)
	after := starts(decode[ucBooking.AvailableSlots](t, w))
	assert.NotContains(t, after, "09:30")
	assert.NotContains(t, after, "10:00")
	assert.NotContains(t, after, "10:30")
	assert.Contains(t, after, "11:00")

	w = e.do(http.MethodGet, "/api/customer/bookings", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]models.Booking](t, w)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Work)
	assert.Equal(t, "Cut", mine[0].Work.Name)

	assert.Contains(t, e.audit.actions(), "booking_created")
}

func TestBookingCreateValidation(t *testing.T) {
	e := bookingEnv(t)
	world := seedWorld(t, e.db)
	customer := e.tokenFor(t, &world.customer)

	w := e.do(http.MethodPost, "/api/customer/bookings", customer, obj{
		"employeeId": world.employee.ID, "workId": world.work.ID, "bookingDate": "03/02/2026", "startOnSlot": 60,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := map[string]string{}
	for _, f := range errorOf(t, w).Errors {
		fields[f.Field] = f.Code
	}
	assert.Equal(t, "invalid_date", fields["bookingDate"])
	assert.Equal(t, "invalid_slot", fields["startOnSlot"])

	// 17:30 + 60 minutes runs past the 18:00 close
	late, _ := slot.Index("17:30")
	w = e.do(http.MethodPost, "/api/customer/bookings", customer, obj{
		"employeeId": world.employee.ID, "workId": world.work.ID, "bookingDate": bookingDay(), "startOnSlot": late,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "outside_business_hours", errorOf(t, w).Code)

	w = e.do(http.MethodPost, "/api/customer/bookings", "", obj{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(http.MethodGet, "/api/customer/available-slots?employeeId=1&workId=1&date=tomorrow", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date", errorOf(t, w).Code)

	w = e.do(http.MethodGet, "/api/customer/available-slots", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[ucBooking.AvailableSlots](t, w).Slots)
}

func seedBooking(t *testing.T, e *env, w world, date string, hm string, status string) models.Booking {
	t.Helper()

	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	require.NoError(t, err)
	minute, err := slot.ParseHM(hm)
	require.NoError(t, err)
	idx, err := slot.IndexOf(minute)
	require.NoError(t, err)

	start := day.Add(time.Duration(minute) * time.Minute)
	b := models.Booking{
		CompanyID:   w.company.ID,
		EmployeeID:  w.employee.ID,
		WorkID:      w.work.ID,
		CustomerID:  w.customer.ID,
		BookingDate: date,
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
		StartOnSlot: idx,
		Status:      status,
	}
	require.NoError(t, e.db.Create(&b).Error)
	return b
}

func TestEmployeeTransitions(t *testing.T) {
	e := bookingEnv(t)
	world := seedWorld(t, e.db)
	day := bookingDay()

	pending := seedBooking(t, e, world, day, "09:00", "PENDING")
	confirmed := seedBooking(t, e, world, day, "11:00", "CONFIRMED")

	ana := models.User{
		Name: "Ana", Email: "ana@example.com", Role: models.RoleEmployee,
		CompanyID: world.company.ID, EmployeeID: uintPtr(world.employee.ID),
	}
	require.NoError(t, e.db.Create(&ana).Error)
	anaToken := e.tokenFor(t, &ana)

	colleague := models.User{
		Name: "Rui", Email: "rui@example.com", Role: models.RoleEmployee,
		CompanyID: world.company.ID, EmployeeID: uintPtr(world.employee.ID + 100),
	}
	require.NoError(t, e.db.Create(&colleague).Error)

	path := func(b models.Booking, action string) string {
		return "/api/employee/" + itoa(world.employee.ID) + "/bookings/" + itoa(b.ID) + "/" + action
	}

	w := e.do(http.MethodPut, path(confirmed, "complete"), e.tokenFor(t, &colleague), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPut, path(confirmed, "complete"), e.tokenFor(t, &world.customer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(http.MethodPut, path(pending, "complete"), anaToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "invalid_state", errorOf(t, w).Code)

	w = e.do(http.MethodPut, path(pending, "confirm"), anaToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "CONFIRMED", decode[models.Booking](t, w).Status)

	w = e.do(http.MethodPut, path(confirmed, "complete"), anaToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "COMPLETED", decode[models.Booking](t, w).Status)

	// owners manage every employee of their company
	w = e.do(http.MethodPut, path(pending, "cancel"), e.tokenFor(t, &world.owner), nil)
	require.Equal(t, http.StatusOK, w.Code)
	cancelled := decode[models.Booking](t, w)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.Equal(t, "employee", cancelled.CancelledBy)

	w = e.do(http.MethodPut, path(pending, "cancel"), anaToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCustomerCancel(t *testing.T) {
	e := bookingEnv(t)
	world := seedWorld(t, e.db)
	b := seedBooking(t, e, world, bookingDay(), "14:00", "CONFIRMED")

	stranger := models.User{Name: "Eve", Email: "eve@example.com", Role: models.RoleCustomer}
	require.NoError(t, e.db.Create(&stranger).Error)

	w := e.do(http.MethodPut, "/api/customer/bookings/"+itoa(b.ID)+"/cancel", e.tokenFor(t, &stranger), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "booking_not_found", errorOf(t, w).Code)

	w = e.do(http.MethodPut, "/api/customer/bookings/"+itoa(b.ID)+"/cancel", e.tokenFor(t, &world.customer), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[models.Booking](t, w)
	assert.Equal(t, "CANCELLED", got.Status)
	assert.Equal(t, "customer", got.CancelledBy)
}

func TestCompanyBookingsAndExport(t *testing.T) {
	e := bookingEnv(t)
	world := seedWorld(t, e.db)
	day := bookingDay()
	seedBooking(t, e, world, day, "09:00", "CONFIRMED")
	seedBooking(t, e, world, day, "13:00", "CANCELLED")

	token := e.tokenFor(t, &world.owner)
	query := "?startDate=" + day + "&endDate=" + day

	w := e.do(http.MethodGet, "/api/company/bookings"+query, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decode[[]models.Booking](t, w)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Customer)
	assert.Equal(t, "Carl", list[0].Customer.Name)

	w = e.do(http.MethodGet, "/api/company/bookings?startDate="+day+"&endDate=2000-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_date_range", errorOf(t, w).Code)

	w = e.do(http.MethodGet, "/api/company/bookings/export"+query, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings-"+day+".xlsx")
	assert.Equal(t, "PK", w.Body.String()[:2])
}
