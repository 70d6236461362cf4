package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/domain/company"
	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/timezone"
)

type AvailableSlots struct {
	Date  string          `json:"date"`
	Slots []slot.TimeSlot `json:"slots"`
}

type GetAvailableSlots struct {
	repo  domain.Repository
	cache domain.SlotCache
	now   func() time.Time
}

func NewGetAvailableSlots(
	repo domain.Repository,
	cache domain.SlotCache,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

// Execute lists the starts at which the work fits the employee's day.
// A request without employee or date yields an empty list.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (AvailableSlots, error) {

	out := AvailableSlots{Date: in.Date, Slots: []slot.TimeSlot{}}

	if in.EmployeeID == 0 || in.Date == "" {
		return out, nil
	}
	if in.WorkID == 0 {
		return out, httperr.ErrField("workId", "required")
	}

	emp, work, err := bookable(ctx, uc.repo, in.EmployeeID, in.WorkID)
	if err != nil {
		return out, err
	}

	comp, err := uc.repo.GetCompanyByID(ctx, emp.CompanyID)
	if err != nil {
		return out, notFound(err, "company_not_found")
	}

	loc := timezone.Location(comp.Timezone)
	day, ok := timezone.ParseDate(in.Date, loc)
	if !ok {
		return out, httperr.ErrField("date", "invalid_date")
	}

	// --------------------------------------------------
	// Past days have nothing, today is cut at now + notice
	// --------------------------------------------------
	now := uc.now().In(loc)
	today := timezone.FormatDate(now)
	if in.Date < today {
		return out, nil
	}

	notBefore := 0
	if in.Date == today {
		notBefore = domain.MinuteOfDay(now) + max(comp.MinAdvanceMinutes, 0)
	}

	slots, err := uc.daySlots(ctx, emp.ID, emp.CompanyID, in.Date, day, work.DurationMinutes)
	if err != nil {
		return out, err
	}

	for _, s := range slots {
		start, err := slot.StartMinute(s.StartOnSlot)
		if err == nil && start >= notBefore {
			out.Slots = append(out.Slots, s)
		}
	}

	return out, nil
}

// daySlots returns the day's free starts ignoring notice, from cache when possible.
func (uc *GetAvailableSlots) daySlots(
	ctx context.Context,
	employeeID uint,
	companyID uint,
	date string,
	day time.Time,
	duration int,
) ([]slot.TimeSlot, error) {

	if cached, ok := uc.cache.Get(ctx, employeeID, date, duration); ok {
		return cached, nil
	}

	bh, err := uc.repo.GetBusinessHours(ctx, companyID, day.Weekday())
	if err != nil {
		if isNotFound(err) {
			return []slot.TimeSlot{}, nil
		}
		return nil, err
	}

	window, open := company.WindowOf(bh)
	if !open {
		uc.cache.Set(ctx, employeeID, date, duration, []slot.TimeSlot{})
		return []slot.TimeSlot{}, nil
	}

	bookings, err := uc.repo.ListActiveForDay(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}

	booked := make([]slot.Interval, 0, len(bookings))
	loc := day.Location()
	for _, b := range bookings {
		booked = append(booked, slot.Interval{
			Start:    domain.MinuteOfDay(b.StartTime.In(loc)),
			Duration: b.DurationMinutes(),
		})
	}

	starts := slot.AvailableStarts(slot.Request{
		Window:   window,
		Duration: duration,
		Booked:   booked,
	})
	slots := slot.Present(starts, duration)

	uc.cache.Set(ctx, employeeID, date, duration, slots)
	return slots, nil
}
