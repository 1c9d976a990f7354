package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint       `json:"barbershop_id"`
	Barbershop   Barbershop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbershop"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Shop-local wall-clock times.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	// Sum of line prices at booking time.
	TotalPrice float64 `json:"total_price"`

	// Amount actually charged at completion, when it differs from TotalPrice.
	FinalAmount *float64 `json:"final_amount"`

	// Shared by all members of one recurring series; nil means standalone.
	RecurrenceGroupID *string `gorm:"size:36;index" json:"recurrence_group_id"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is a booked line. Price, commission rate and the
// chemical flag are captured at booking time and never recomputed from
// the current service or barber configuration.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Price          float64 `json:"price"`
	CommissionRate float64 `json:"commission_rate"`
	Chemical       bool    `json:"chemical"`
}
