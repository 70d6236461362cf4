package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type Action string

const (
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
	ActionConfirm  Action = "confirm"
)

// ======================================================
// Customer side
// ======================================================

type CancelByCustomer struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit Auditor
	now   func() time.Time
}

func NewCancelByCustomer(
	repo domain.Repository,
	cache domain.SlotCache,
	audit Auditor,
) *CancelByCustomer {
	return &CancelByCustomer{repo: repo, cache: cache, audit: audit, now: time.Now}
}

// Execute cancels one of the customer's own bookings. Bookings of other
// customers are reported as not found.
func (uc *CancelByCustomer) Execute(
	ctx context.Context,
	customerID uint,
	bookingID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking_not_found")
	}
	if b.CustomerID != customerID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.Cancel(b, domain.CancelledByCustomer, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, b.EmployeeID, b.BookingDate)
	metrics.RecordTransition(b.Status, domain.CancelledByCustomer)

	uc.audit.Dispatch(audit.Event{
		CompanyID: b.CompanyID,
		UserID:    &customerID,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &b.ID,
		Metadata:  map[string]any{"by": domain.CancelledByCustomer},
	})

	return b, nil
}

// ======================================================
// Employee / owner side
// ======================================================

type TransitionInput struct {
	CompanyID  uint
	EmployeeID uint
	BookingID  uint
	ActorID    uint
	Action     Action
}

type ChangeBookingStatus struct {
	repo  domain.Repository
	cache domain.SlotCache
	audit Auditor
	now   func() time.Time
}

func NewChangeBookingStatus(
	repo domain.Repository,
	cache domain.SlotCache,
	audit Auditor,
) *ChangeBookingStatus {
	return &ChangeBookingStatus{repo: repo, cache: cache, audit: audit, now: time.Now}
}

// Execute applies a cancel, complete or confirm to a booking of the
// employee. The booking must belong to both the employee and the company.
func (uc *ChangeBookingStatus) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, notFound(err, "booking_not_found")
	}
	if b.EmployeeID != in.EmployeeID || b.CompanyID != in.CompanyID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := uc.now()
	switch in.Action {
	case ActionCancel:
		err = domain.Cancel(b, domain.CancelledByEmployee, now)
	case ActionComplete:
		err = domain.Complete(b, now)
	case ActionConfirm:
		err = domain.Confirm(b, now)
	default:
		err = httperr.ErrBusiness("invalid_state")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, b.EmployeeID, b.BookingDate)
	metrics.RecordTransition(b.Status, "employee")

	uc.audit.Dispatch(audit.Event{
		CompanyID: b.CompanyID,
		UserID:    &in.ActorID,
		Action:    "booking_" + strings.ToLower(b.Status),
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	return b, nil
}
