package models

import "time"

// Point-of-sale transaction: one barber, zero or one client, one or
// more product lines.
type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `json:"barbershop_id"`

	BarberID uint `json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID *uint   `json:"client_id"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client,omitempty"`

	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	// Sum of line subtotals, until overridden by an amount edit.
	Total float64 `json:"total"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaleItem captures unit price and commission rate at sale time.
type SaleItem struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	SaleID uint `gorm:"index" json:"sale_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	CommissionRate float64 `json:"commission_rate"`
	Subtotal       float64 `json:"subtotal"`
}
