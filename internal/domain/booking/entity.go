package booking

import (
	"time"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

const (
	CancelledByCustomer = "customer"
	CancelledByEmployee = "employee"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, by string, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	b.CancelledBy = by
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}
