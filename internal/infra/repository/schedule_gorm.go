package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Barbershop / people
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.User, error) {

	var barber models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ScheduleGormRepository) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ScheduleGormRepository) GetServices(
	ctx context.Context,
	barbershopID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND id IN ?", barbershopID, serviceIDs).
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// --------------------------------------------------
// Appointment (create / mutate)
// --------------------------------------------------

func (r *ScheduleGormRepository) CreateAppointmentGuarded(
	ctx context.Context,
	ap *models.Appointment,
	allowConflict bool,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if !allowConflict {
			var count int64
			if err := tx.
				Model(&models.Appointment{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
					ap.BarberID, string(domain.StatusCancelled), ap.EndTime, ap.StartTime,
				).
				Count(&count).Error; err != nil {
				return err
			}

			if count > 0 {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		return tx.Create(ap).Error
	})
}

func (r *ScheduleGormRepository) CreateAppointmentBatch(
	ctx context.Context,
	aps []models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range aps {
			if err := tx.Create(&aps[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ScheduleGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND barber_id = ?", appointmentID, barberID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Services").
		Save(ap).Error
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (r *ScheduleGormRepository) ListForBarberInRange(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where(
			"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID, string(domain.StatusCancelled), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) ListWindow(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Services.Service").
		Where(
			"barbershop_id = ? AND start_time >= ? AND start_time < ?",
			barbershopID, start, end,
		)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Recurrence
// --------------------------------------------------

func (r *ScheduleGormRepository) GroupMemberCounts(
	ctx context.Context,
	groupIDs []string,
) (map[string]int64, error) {

	counts := map[string]int64{}
	if len(groupIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		RecurrenceGroupID string
		Total             int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("recurrence_group_id, COUNT(*) AS total").
		Where("recurrence_group_id IN ?", groupIDs).
		Group("recurrence_group_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.RecurrenceGroupID] = row.Total
	}

	return counts, nil
}

func (r *ScheduleGormRepository) ListSeries(
	ctx context.Context,
	barbershopID uint,
	groupID string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services").
		Preload("Services.Service").
		Where(
			"barbershop_id = ? AND recurrence_group_id = ?",
			barbershopID, groupID,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) DeleteSeries(
	ctx context.Context,
	barbershopID uint,
	groupID string,
) (int64, error) {

	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var ids []uint
		if err := tx.
			Model(&models.Appointment{}).
			Where("barbershop_id = ? AND recurrence_group_id = ?", barbershopID, groupID).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return httperr.ErrBusiness("series_not_found")
		}

		if err := tx.
			Where("appointment_id IN ?", ids).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&models.Appointment{})
		if res.Error != nil {
			return res.Error
		}

		deleted = res.RowsAffected
		return nil
	})

	return deleted, err
}

func (r *ScheduleGormRepository) ListUngroupedCandidates(
	ctx context.Context,
	barbershopID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where(
			"barbershop_id = ? AND status <> ? AND recurrence_group_id IS NULL",
			barbershopID, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *ScheduleGormRepository) AssignRecurrenceGroup(
	ctx context.Context,
	groupID string,
	appointmentIDs []uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id IN ?", appointmentIDs).
		Update("recurrence_group_id", groupID).Error
}

// --------------------------------------------------
// Schedule blocks
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBlocksInRange(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.ScheduleBlock, error) {

	q := r.db.WithContext(ctx).
		Where(
			"barbershop_id = ? AND start_time < ? AND end_time > ?",
			barbershopID, end, start,
		)

	if barberID != 0 {
		q = q.Where("barber_id IS NULL OR barber_id = ?", barberID)
	}

	var blocks []models.ScheduleBlock
	if err := q.Order("start_time ASC").Find(&blocks).Error; err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *ScheduleGormRepository) CreateBlockWithChildren(
	ctx context.Context,
	parent *models.ScheduleBlock,
	children []models.ScheduleBlock,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(parent).Error; err != nil {
			return err
		}

		for i := range children {
			children[i].ParentBlockID = &parent.ID
			if err := tx.Create(&children[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *ScheduleGormRepository) DeleteBlock(
	ctx context.Context,
	barbershopID uint,
	blockID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var block models.ScheduleBlock
		if err := tx.
			Where("id = ? AND barbershop_id = ?", blockID, barbershopID).
			First(&block).Error; err != nil {
			return err
		}

		if err := tx.
			Where("parent_block_id = ?", block.ID).
			Delete(&models.ScheduleBlock{}).Error; err != nil {
			return err
		}

		return tx.Delete(&block).Error
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
