package schedule

import (
	"time"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Settle records the amount actually charged. The booked line prices
// and rates stay untouched; FinalAmount only overrides the revenue side.
func Settle(ap *models.Appointment, amount float64) error {
	if err := CanSettle(Status(ap.Status)); err != nil {
		return err
	}
	if amount <= 0 {
		return httperr.ErrBusiness("invalid_amount")
	}

	ap.FinalAmount = &amount
	return nil
}
