package appointment

import (
	"context"
	"time"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
	"github.com/shearbook/shearbook/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string
	Time  string
	Notes string

	// AllowConflict is the explicit double-booking override: conflicts
	// are still detected and reported, but do not abort the booking.
	AllowConflict bool
}

// ConflictError carries the overlapping bookings back to the caller so
// the user can confirm or move the appointment.
type ConflictError struct {
	Conflicts []domain.Conflict
}

func (e *ConflictError) Error() string {
	return "time_conflict"
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	lines, total, durationMin, err := bookLines(ctx, uc.repo, in.BarbershopID, in.ServiceIDs, barber)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	blocks, err := uc.repo.ListBlocksInRange(ctx, in.BarbershopID, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}
	if domain.IsBlocked(start, end, blocks) {
		return nil, httperr.ErrBusiness("time_blocked")
	}

	existing, err := uc.repo.ListForBarberInRange(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}
	if conflicts := domain.DetectConflicts(start, end, existing); len(conflicts) > 0 && !in.AllowConflict {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     client.ID,
		StartTime:    start,
		EndTime:      end,
		Status:       string(domain.InitialStatus()),
		Services:     lines,
		TotalPrice:   total,
		Notes:        in.Notes,
	}

	if err := uc.repo.CreateAppointmentGuarded(ctx, ap, in.AllowConflict); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	uc.rt.Publish(realtime.Change{
		Entity:   "appointments",
		Action:   "created",
		EntityID: ap.ID,
		ShopID:   in.BarbershopID,
	})

	return ap, nil
}

// bookLines resolves the requested services and captures price, rate and
// chemical flag as of booking time.
func bookLines(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	serviceIDs []uint,
	barber *models.User,
) ([]models.AppointmentService, float64, int, error) {

	if len(serviceIDs) == 0 {
		return nil, 0, 0, httperr.ErrBusiness("no_services")
	}

	services, err := repo.GetServices(ctx, barbershopID, serviceIDs)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(services) != len(serviceIDs) {
		return nil, 0, 0, httperr.ErrBusiness("service_not_found")
	}

	var (
		lines       []models.AppointmentService
		total       float64
		durationMin int
	)

	for _, svc := range services {
		if !svc.Active {
			return nil, 0, 0, httperr.ErrBusiness("service_inactive")
		}

		rate := barber.ServiceRate
		if svc.Chemical {
			rate = barber.ChemicalRate
		}

		lines = append(lines, models.AppointmentService{
			ServiceID:      svc.ID,
			Price:          svc.Price,
			CommissionRate: rate,
			Chemical:       svc.Chemical,
		})

		total += svc.Price
		durationMin += svc.DurationMin
	}

	if durationMin <= 0 {
		return nil, 0, 0, httperr.ErrBusiness("invalid_duration")
	}

	return lines, total, durationMin, nil
}
