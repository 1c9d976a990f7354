package models

import "time"

// Outcome of one reminder message send.
type ReminderLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID  uint `json:"barbershop_id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ClientID      uint `json:"client_id"`

	Channel      string `gorm:"size:20" json:"channel"`
	Message      string `gorm:"type:text" json:"message"`
	Status       string `gorm:"size:20" json:"status"`
	ErrorMessage string `gorm:"size:255" json:"error_message"`

	SentAt    time.Time `json:"sent_at"`
	CreatedAt time.Time `json:"created_at"`
}
