package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Company
// --------------------------------------------------

func (r *BookingGormRepository) GetCompanyByID(
	ctx context.Context,
	id uint,
) (*models.Company, error) {

	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *BookingGormRepository) GetBusinessHours(
	ctx context.Context,
	companyID uint,
	weekday time.Weekday,
) (*models.BusinessHours, error) {

	var bh models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND weekday = ?", companyID, int(weekday)).
		First(&bh).Error; err != nil {
		return nil, err
	}
	return &bh, nil
}

// --------------------------------------------------
// Employee / Work
// --------------------------------------------------

func (r *BookingGormRepository) GetEmployee(
	ctx context.Context,
	id uint,
) (*models.Employee, error) {

	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Preload("Works").
		First(&emp, id).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *BookingGormRepository) GetWork(
	ctx context.Context,
	id uint,
) (*models.Work, error) {

	var work models.Work
	if err := r.db.WithContext(ctx).First(&work, id).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateIfFree(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The employee row is the per-employee mutex for concurrent writers.
		var emp models.Employee
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&emp, b.EmployeeID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"employee_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.EmployeeID,
				domain.ActiveStatuses,
				b.EndTime,
				b.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(b).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("time_conflict")
	}
	return err
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveForDay(
	ctx context.Context,
	employeeID uint,
	date string,
) ([]models.Booking, error) {

	var list []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "start_on_slot", "status").
		Where(
			"employee_id = ? AND booking_date = ? AND status IN ?",
			employeeID, date, domain.ActiveStatuses,
		).
		Order("start_time ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {

	var list []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Work").
		Where("customer_id = ?", customerID).
		Order("start_time DESC").
		Find(&list).Error

	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) ListForCompany(
	ctx context.Context,
	companyID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var list []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Work").
		Preload("Customer").
		Where(
			"company_id = ? AND start_time >= ? AND start_time < ?",
			companyID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&list).Error

	if err != nil {
		return nil, err
	}
	return list, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

// ListDueReminders returns confirmed bookings starting in [from, to) whose
// customer has not been reminded yet.
func (r *BookingGormRepository) ListDueReminders(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var list []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Work").
		Preload("Customer").
		Where(
			"status = ? AND reminder_sent_at IS NULL AND start_time >= ? AND start_time < ?",
			string(domain.StatusConfirmed),
			from,
			to,
		).
		Order("start_time ASC").
		Find(&list).Error

	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *BookingGormRepository) MarkReminderSent(
	ctx context.Context,
	bookingID uint,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("reminder_sent_at", at).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
