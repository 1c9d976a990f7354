package appointment

import (
	"context"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
)

type SettleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewSettleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *SettleAppointment {
	return &SettleAppointment{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

// Execute records the final charged amount on a completed appointment.
// Booked line prices and rates are untouched; only the revenue side of
// the appointment changes.
func (uc *SettleAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
	amount float64,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Settle(ap, amount); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_settled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"amount": amount},
	})

	uc.rt.Publish(realtime.Change{
		Entity:   "appointments",
		Action:   "updated",
		EntityID: ap.ID,
		ShopID:   barbershopID,
	})

	return ap, nil
}
