package jobs

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"github.com/shearbook/shearbook/internal/config"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/timezone"
)

// ReminderService sends next-day appointment reminders to clients and
// records every attempt as a ReminderLog row.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	from   string
}

// NewReminderService builds the service. Without Twilio credentials it
// stays disabled and Run becomes a no-op.
func NewReminderService(db *gorm.DB, cfg *config.Config) *ReminderService {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
		return &ReminderService{db: db}
	}

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFrom,
	}
}

// Run processes every shop once. Called daily by the scheduler.
func (s *ReminderService) Run() {
	if s.client == nil {
		return
	}

	log.Println("reminders: starting daily run")

	var shops []models.Barbershop
	if err := s.db.Find(&shops).Error; err != nil {
		log.Printf("reminders: failed to fetch shops: %v", err)
		return
	}

	for _, shop := range shops {
		s.processShop(shop)
	}

	log.Println("reminders: daily run completed")
}

func (s *ReminderService) processShop(shop models.Barbershop) {
	now := timezone.NowIn(shop.Timezone)
	loc := now.Location()

	// Tomorrow, shop-local.
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []models.Appointment
	err := s.db.
		Preload("Client").
		Where("barbershop_id = ? AND status = ? AND start_time >= ? AND start_time < ?",
			shop.ID, "scheduled", dayStart, dayEnd).
		Find(&appointments).Error
	if err != nil {
		log.Printf("reminders: shop %d: failed to list appointments: %v", shop.ID, err)
		return
	}

	for _, ap := range appointments {
		if ap.Client.Phone == "" {
			continue
		}
		if s.alreadySent(ap.ID) {
			continue
		}
		s.send(shop, ap)
	}
}

func (s *ReminderService) alreadySent(appointmentID uint) bool {
	var count int64
	s.db.Model(&models.ReminderLog{}).
		Where("appointment_id = ? AND status = ?", appointmentID, "sent").
		Count(&count)
	return count > 0
}

func (s *ReminderService) send(shop models.Barbershop, ap models.Appointment) {
	message := fmt.Sprintf(
		"Hi %s! Reminder: your appointment at %s is tomorrow at %s.",
		ap.Client.Name,
		shop.Name,
		ap.StartTime.In(timezone.Location(shop.Timezone)).Format("15:04"),
	)

	channel := "sms"
	to := ap.Client.Phone
	from := s.from
	if strings.HasPrefix(to, "+") {
		channel = "whatsapp"
		to = "whatsapp:" + to
		from = "whatsapp:" + from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	status := "sent"
	errorMsg := ""
	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("reminders: failed to send to %s: %v", ap.Client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	}

	rl := models.ReminderLog{
		BarbershopID:  shop.ID,
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		Channel:       channel,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		SentAt:        time.Now(),
	}
	if err := s.db.Create(&rl).Error; err != nil {
		log.Printf("reminders: failed to log reminder for appointment %d: %v", ap.ID, err)
	}
}
