package schedule

import (
	"context"
	"time"

	"github.com/shearbook/shearbook/internal/models"
)

type Repository interface {
	// -------- Barbershop / people --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Services --------
	GetServices(
		ctx context.Context,
		barbershopID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Appointment (create / mutate) --------

	// CreateAppointmentGuarded re-checks conflicts under a row lock and
	// inserts in the same transaction. With allowConflict set the check
	// is skipped: the caller already confirmed the double-booking.
	CreateAppointmentGuarded(
		ctx context.Context,
		ap *models.Appointment,
		allowConflict bool,
	) error

	// CreateAppointmentBatch inserts a whole recurring series atomically.
	CreateAppointmentBatch(
		ctx context.Context,
		aps []models.Appointment,
	) error

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Reads --------
	ListForBarberInRange(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListWindow(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Recurrence --------
	GroupMemberCounts(
		ctx context.Context,
		groupIDs []string,
	) (map[string]int64, error)

	ListSeries(
		ctx context.Context,
		barbershopID uint,
		groupID string,
	) ([]models.Appointment, error)

	DeleteSeries(
		ctx context.Context,
		barbershopID uint,
		groupID string,
	) (int64, error)

	ListUngroupedCandidates(
		ctx context.Context,
		barbershopID uint,
	) ([]models.Appointment, error)

	AssignRecurrenceGroup(
		ctx context.Context,
		groupID string,
		appointmentIDs []uint,
	) error

	// -------- Schedule blocks --------
	ListBlocksInRange(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.ScheduleBlock, error)

	CreateBlockWithChildren(
		ctx context.Context,
		parent *models.ScheduleBlock,
		children []models.ScheduleBlock,
	) error

	DeleteBlock(
		ctx context.Context,
		barbershopID uint,
		blockID uint,
	) error
}
