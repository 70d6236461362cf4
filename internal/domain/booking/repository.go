package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompanyByID(
		ctx context.Context,
		id uint,
	) (*models.Company, error)

	GetBusinessHours(
		ctx context.Context,
		companyID uint,
		weekday time.Weekday,
	) (*models.BusinessHours, error)

	// -------- Employee / Work --------

	// GetEmployee preloads the assigned works.
	GetEmployee(
		ctx context.Context,
		id uint,
	) (*models.Employee, error)

	GetWork(
		ctx context.Context,
		id uint,
	) (*models.Work, error)

	// -------- Booking (create / conflict) --------

	// CreateIfFree inserts the booking unless an active booking of the
	// same employee overlaps it. Overlap is reported as time_conflict.
	CreateIfFree(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Availability --------
	ListActiveForDay(
		ctx context.Context,
		employeeID uint,
		date string,
	) ([]models.Booking, error)

	// -------- Listing --------
	ListForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)

	ListForCompany(
		ctx context.Context,
		companyID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}

// Locker serialises booking creation per employee and day.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// SlotCache keeps computed availability for a short time.
type SlotCache interface {
	Get(ctx context.Context, employeeID uint, date string, duration int) ([]slot.TimeSlot, bool)
	Set(ctx context.Context, employeeID uint, date string, duration int, slots []slot.TimeSlot)
	Invalidate(ctx context.Context, employeeID uint, date string)
}
