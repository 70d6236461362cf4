package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/timezone"
)

const (
	defaultRangeDays = 7
	maxRangeDays     = 93
)

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID uint,
) ([]models.Booking, error) {

	list, err := uc.repo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Booking{}
	}
	return list, nil
}

// ======================================================

type CompanyBookingsInput struct {
	CompanyID uint
	StartDate string // inclusive, defaults to today
	EndDate   string // inclusive, defaults to StartDate + 7 days
}

type ListCompanyBookings struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListCompanyBookings(repo domain.Repository) *ListCompanyBookings {
	return &ListCompanyBookings{repo: repo, now: time.Now}
}

func (uc *ListCompanyBookings) Execute(
	ctx context.Context,
	in CompanyBookingsInput,
) ([]models.Booking, *time.Location, error) {

	comp, err := uc.repo.GetCompanyByID(ctx, in.CompanyID)
	if err != nil {
		return nil, nil, notFound(err, "company_not_found")
	}

	loc := timezone.Location(comp.Timezone)
	start, end, err := dateRange(in.StartDate, in.EndDate, uc.now().In(loc), loc)
	if err != nil {
		return nil, nil, err
	}

	list, err := uc.repo.ListForCompany(ctx, comp.ID, start, end)
	if err != nil {
		return nil, nil, err
	}
	if list == nil {
		list = []models.Booking{}
	}
	return list, loc, nil
}

// dateRange turns inclusive calendar days into a half open [start, end) interval.
func dateRange(startDate, endDate string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	start, _ := timezone.ParseDate(timezone.FormatDate(now), loc)
	if startDate != "" {
		t, ok := timezone.ParseDate(startDate, loc)
		if !ok {
			return time.Time{}, time.Time{}, httperr.ErrField("startDate", "invalid_date")
		}
		start = t
	}

	end := start.AddDate(0, 0, defaultRangeDays)
	if endDate != "" {
		t, ok := timezone.ParseDate(endDate, loc)
		if !ok {
			return time.Time{}, time.Time{}, httperr.ErrField("endDate", "invalid_date")
		}
		end = t.AddDate(0, 0, 1)
	}

	if !end.After(start) || end.After(start.AddDate(0, 0, maxRangeDays)) {
		return time.Time{}, time.Time{}, httperr.ErrField("endDate", "invalid_date_range")
	}
	return start, end, nil
}
