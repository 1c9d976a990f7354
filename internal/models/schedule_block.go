package models

import "time"

// ScheduleBlock makes an interval unavailable for booking. BarberID nil
// means the whole shop is blocked. A weekly-recurring block is stored as
// a parent plus generated children pointing at it; each child interval
// fits within a single calendar day.
type ScheduleBlock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint  `json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	ParentBlockID *uint `gorm:"index" json:"parent_block_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
