package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shearbook/shearbook/internal/domain/billing"
	schedule "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BillingGormRepository) ListCompletedAppointments(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Services.Service").
		Where(
			"barbershop_id = ? AND barber_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
			barbershopID, barberID, string(schedule.StatusCompleted), start, end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *BillingGormRepository) ListSales(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Sale, error) {

	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Preload("Items.Product").
		Where(
			"barbershop_id = ? AND barber_id = ? AND created_at >= ? AND created_at < ?",
			barbershopID, barberID, start, end,
		).
		Order("created_at ASC").
		Find(&sales).Error; err != nil {
		return nil, err
	}

	return sales, nil
}

// Compile-time check
var _ billing.Repository = (*BillingGormRepository)(nil)
