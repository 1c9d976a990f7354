package jobs

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/shearbook/shearbook/internal/models"
	ucappointment "github.com/shearbook/shearbook/internal/usecase/appointment"
)

// Scheduler owns the background cron jobs: nightly recurrence grouping
// and daily client reminders.
type Scheduler struct {
	db        *gorm.DB
	backfill  *ucappointment.BackfillGroups
	reminders *ReminderService

	cron *cron.Cron
}

func NewScheduler(
	db *gorm.DB,
	backfill *ucappointment.BackfillGroups,
	reminders *ReminderService,
) *Scheduler {
	return &Scheduler{
		db:        db,
		backfill:  backfill,
		reminders: reminders,
		cron:      cron.New(),
	}
}

func (s *Scheduler) Start() {
	// Group freshly booked appointments into series overnight.
	s.cron.AddFunc("0 3 * * *", s.runBackfill)

	// Next-day reminders every morning.
	s.cron.AddFunc("0 9 * * *", s.reminders.Run)

	s.cron.Start()
	log.Println("jobs: scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runBackfill() {
	ctx := context.Background()

	var shopIDs []uint
	if err := s.db.Model(&models.Barbershop{}).Pluck("id", &shopIDs).Error; err != nil {
		log.Printf("jobs: backfill: failed to list shops: %v", err)
		return
	}

	for _, shopID := range shopIDs {
		report, err := s.backfill.Execute(ctx, shopID)
		if err != nil {
			log.Printf("jobs: backfill: shop %d: %v (applied %d of %d)",
				shopID, err, report.GroupsApplied, report.GroupsProposed)
			continue
		}
		if report.GroupsApplied > 0 {
			log.Printf("jobs: backfill: shop %d: grouped %d appointments into %d series",
				shopID, report.AppointmentsGrouped, report.GroupsApplied)
		}
	}
}
