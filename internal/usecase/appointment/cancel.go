package appointment

import (
	"context"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
	"github.com/shearbook/shearbook/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBarber(ctx, appointmentID, barberID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.rt.Publish(realtime.Change{
		Entity:   "appointments",
		Action:   "updated",
		EntityID: ap.ID,
		ShopID:   barbershopID,
	})

	return ap, nil
}
