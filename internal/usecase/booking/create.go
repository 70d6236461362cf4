package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/domain/company"
	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/timezone"
)

const maxNotesLength = 255

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint

	EmployeeID  uint
	WorkID      uint
	BookingDate string
	StartOnSlot int
	Notes       string
}

func (in CreateBookingInput) validate() error {
	var errs []httperr.FieldError

	if in.EmployeeID == 0 {
		errs = append(errs, httperr.FieldError{Field: "employeeId", Code: "required"})
	}
	if in.WorkID == 0 {
		errs = append(errs, httperr.FieldError{Field: "workId", Code: "required"})
	}
	if in.BookingDate == "" {
		errs = append(errs, httperr.FieldError{Field: "bookingDate", Code: "required"})
	} else if _, ok := timezone.ParseDate(in.BookingDate, time.UTC); !ok {
		errs = append(errs, httperr.FieldError{Field: "bookingDate", Code: "invalid_date"})
	}
	if _, err := slot.StartMinute(in.StartOnSlot); err != nil {
		errs = append(errs, httperr.FieldError{Field: "startOnSlot", Code: "invalid_slot"})
	}
	if len(in.Notes) > maxNotesLength {
		errs = append(errs, httperr.FieldError{Field: "notes", Code: "too_long"})
	}

	if len(errs) > 0 {
		return httperr.ErrValidation(errs...)
	}
	return nil
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo    domain.Repository
	locker  domain.Locker
	cache   domain.SlotCache
	audit   Auditor
	lockTTL time.Duration
	now     func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	locker domain.Locker,
	cache domain.SlotCache,
	audit Auditor,
	lockTTL time.Duration,
) *CreateBooking {
	return &CreateBooking{
		repo:    repo,
		locker:  locker,
		cache:   cache,
		audit:   audit,
		lockTTL: lockTTL,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	in.Notes = strings.TrimSpace(in.Notes)
	if err := in.validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Employee / work / company
	// --------------------------------------------------
	emp, work, err := bookable(ctx, uc.repo, in.EmployeeID, in.WorkID)
	if err != nil {
		return nil, err
	}

	comp, err := uc.repo.GetCompanyByID(ctx, emp.CompanyID)
	if err != nil {
		return nil, notFound(err, "company_not_found")
	}

	// --------------------------------------------------
	// Slot -> wall clock in the company timezone
	// --------------------------------------------------
	loc := timezone.Location(comp.Timezone)
	day, _ := timezone.ParseDate(in.BookingDate, loc)
	startMinute, _ := slot.StartMinute(in.StartOnSlot)
	duration := work.DurationMinutes

	start := timezone.At(day, startMinute)
	end := start.Add(time.Duration(duration) * time.Minute)

	now := uc.now().In(loc)
	notice := time.Duration(max(comp.MinAdvanceMinutes, 0)) * time.Minute
	if start.Before(now.Add(notice)) {
		return nil, httperr.ErrField("startOnSlot", "too_soon")
	}

	// --------------------------------------------------
	// Business hours
	// --------------------------------------------------
	bh, err := uc.repo.GetBusinessHours(ctx, comp.ID, day.Weekday())
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	window, open := company.WindowOf(bh)
	if !open || !slot.Fits(startMinute, duration, window, nil) {
		return nil, httperr.ErrField("startOnSlot", "outside_business_hours")
	}

	// --------------------------------------------------
	// Per employee/day lock (fast path)
	// --------------------------------------------------
	key := domain.LockKey(emp.ID, in.BookingDate)
	token, locked, err := uc.locker.Lock(ctx, key, uc.lockTTL)
	if err == nil && !locked {
		metrics.RecordConflict("slot_busy")
		return nil, httperr.ErrBusiness("slot_busy")
	}
	if locked {
		defer func() {
			_ = uc.locker.Unlock(context.WithoutCancel(ctx), key, token)
		}()
	}
	// a lock backend error falls through to the transactional check

	// --------------------------------------------------
	// Authoritative overlap check + insert
	// --------------------------------------------------
	b := &models.Booking{
		CompanyID:   comp.ID,
		EmployeeID:  emp.ID,
		WorkID:      work.ID,
		CustomerID:  in.CustomerID,
		BookingDate: in.BookingDate,
		StartTime:   start,
		EndTime:     end,
		StartOnSlot: in.StartOnSlot,
		Status:      string(domain.InitialStatus(comp.RequireConfirmation)),
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateIfFree(ctx, b); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.RecordConflict("time_conflict")
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, emp.ID, in.BookingDate)
	metrics.RecordBookingCreated(b.Status)

	uc.audit.Dispatch(audit.Event{
		CompanyID: comp.ID,
		UserID:    &in.CustomerID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"employeeId":  emp.ID,
			"workId":      work.ID,
			"bookingDate": in.BookingDate,
			"startOnSlot": in.StartOnSlot,
			"status":      b.Status,
		},
	})

	return b, nil
}
