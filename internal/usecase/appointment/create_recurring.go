package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
	"github.com/shearbook/shearbook/internal/timezone"
)

const (
	maxOccurrences  = 52
	maxIntervalDays = 90
)

type CreateRecurringInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Date  string
	Time  string
	Notes string

	Occurrences  int
	IntervalDays int

	AllowConflict bool
}

type CreateRecurring struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewCreateRecurring(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *CreateRecurring {
	return &CreateRecurring{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

// Execute books a whole recurring series in one transaction: every
// occurrence shares a fresh group id, and a conflict on any occurrence
// aborts the batch unless the override is set.
func (uc *CreateRecurring) Execute(
	ctx context.Context,
	in CreateRecurringInput,
) ([]models.Appointment, error) {

	if in.Occurrences < 2 || in.Occurrences > maxOccurrences {
		return nil, httperr.ErrBusiness("invalid_occurrences")
	}
	if in.IntervalDays < 1 || in.IntervalDays > maxIntervalDays {
		return nil, httperr.ErrBusiness("invalid_interval")
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	first, err := time.ParseInLocation(
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
	if first.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
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

	groupID := uuid.NewString()
	duration := time.Duration(durationMin) * time.Minute

	var (
		batch        []models.Appointment
		allConflicts []domain.Conflict
	)

	for i := 0; i < in.Occurrences; i++ {
		start := first.AddDate(0, 0, i*in.IntervalDays)
		end := start.Add(duration)

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
		allConflicts = append(allConflicts, domain.DetectConflicts(start, end, existing)...)

		gid := groupID
		occLines := make([]models.AppointmentService, len(lines))
		copy(occLines, lines)

		batch = append(batch, models.Appointment{
			BarbershopID:      in.BarbershopID,
			BarberID:          in.BarberID,
			ClientID:          client.ID,
			StartTime:         start,
			EndTime:           end,
			Status:            string(domain.InitialStatus()),
			Services:          occLines,
			TotalPrice:        total,
			RecurrenceGroupID: &gid,
			Notes:             in.Notes,
		})
	}

	if len(allConflicts) > 0 && !in.AllowConflict {
		return nil, &ConflictError{Conflicts: allConflicts}
	}

	if err := uc.repo.CreateAppointmentBatch(ctx, batch); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "recurring_series_created",
		Entity:       "appointment",
		Metadata: map[string]any{
			"group_id":    groupID,
			"occurrences": in.Occurrences,
			"interval":    in.IntervalDays,
		},
	})

	uc.rt.Publish(realtime.Change{
		Entity: "appointments",
		Action: "created",
		ShopID: in.BarbershopID,
	})

	return batch, nil
}
