package billing

import (
	"context"
	"time"

	"github.com/shearbook/shearbook/internal/models"
)

type Repository interface {
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	ListCompletedAppointments(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListSales(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Sale, error)
}
