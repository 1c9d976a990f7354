package billing

import (
	"math"
	"sort"
	"time"

	"github.com/shearbook/shearbook/internal/models"
)

type Category string

const (
	CategoryService  Category = "service"
	CategoryChemical Category = "chemical"
	CategoryProduct  Category = "product"
)

// CategoryTotals accumulates one commission category.
type CategoryTotals struct {
	Count      int     `json:"count"`
	Revenue    float64 `json:"revenue"`
	Commission float64 `json:"commission"`
}

// TransactionItem is one commissioned line of an appointment or sale.
type TransactionItem struct {
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Quantity   int      `json:"quantity"`
	Price      float64  `json:"price"`
	Rate       float64  `json:"rate"`
	Commission float64  `json:"commission"`
}

// Transaction is one entry of the flat, time-ordered statement list.
type Transaction struct {
	Type       string            `json:"type"` // appointment | sale
	ID         uint              `json:"id"`
	OccurredAt time.Time         `json:"occurred_at"`
	ClientName string            `json:"client_name"`
	Items      []TransactionItem `json:"items"`
	Total      float64           `json:"total"`
	Commission float64           `json:"commission"`
}

// Statement is a barber's commission/revenue summary for a period.
type Statement struct {
	BarberID uint      `json:"barber_id"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`

	Service  CategoryTotals `json:"service"`
	Chemical CategoryTotals `json:"chemical"`
	Product  CategoryTotals `json:"product"`

	TotalRevenue    float64 `json:"total_revenue"`
	TotalCommission float64 `json:"total_commission"`

	Transactions []Transaction `json:"transactions"`
}

// BuildStatement derives a statement from completed appointments and
// sales. Commission per line is the captured price times the captured
// rate; the barber's current rates are never consulted, so editing them
// later cannot change historical statements. An appointment with no
// booked lines contributes zero commission but its total price still
// counts toward revenue.
func BuildStatement(
	barberID uint,
	from time.Time,
	to time.Time,
	appointments []models.Appointment,
	sales []models.Sale,
) Statement {

	st := Statement{
		BarberID:     barberID,
		From:         from,
		To:           to,
		Transactions: []Transaction{},
	}

	for _, ap := range appointments {
		tx := Transaction{
			Type:       "appointment",
			ID:         ap.ID,
			OccurredAt: ap.StartTime,
			ClientName: ap.Client.Name,
			Items:      []TransactionItem{},
		}

		for _, line := range ap.Services {
			cat := CategoryService
			if line.Chemical {
				cat = CategoryChemical
			}

			item := TransactionItem{
				Name:       line.Service.Name,
				Category:   cat,
				Quantity:   1,
				Price:      line.Price,
				Rate:       line.CommissionRate,
				Commission: round2(line.Price * line.CommissionRate),
			}
			tx.Items = append(tx.Items, item)
			tx.Commission += item.Commission

			bucket := &st.Service
			if cat == CategoryChemical {
				bucket = &st.Chemical
			}
			bucket.Count++
			bucket.Revenue += line.Price
			bucket.Commission += item.Commission
		}

		tx.Total = ap.TotalPrice
		if ap.FinalAmount != nil {
			tx.Total = *ap.FinalAmount
		}

		st.TotalRevenue += tx.Total
		st.TotalCommission += tx.Commission
		st.Transactions = append(st.Transactions, tx)
	}

	for _, sale := range sales {
		tx := Transaction{
			Type:       "sale",
			ID:         sale.ID,
			OccurredAt: sale.CreatedAt,
			Items:      []TransactionItem{},
		}
		if sale.Client != nil {
			tx.ClientName = sale.Client.Name
		}

		for _, line := range sale.Items {
			item := TransactionItem{
				Name:       line.Product.Name,
				Category:   CategoryProduct,
				Quantity:   line.Quantity,
				Price:      line.Subtotal,
				Rate:       line.CommissionRate,
				Commission: round2(line.Subtotal * line.CommissionRate),
			}
			tx.Items = append(tx.Items, item)
			tx.Commission += item.Commission

			st.Product.Count += line.Quantity
			st.Product.Revenue += line.Subtotal
			st.Product.Commission += item.Commission
		}

		tx.Total = sale.Total
		st.TotalRevenue += tx.Total
		st.TotalCommission += tx.Commission
		st.Transactions = append(st.Transactions, tx)
	}

	sort.SliceStable(st.Transactions, func(i, j int) bool {
		return st.Transactions[i].OccurredAt.Before(st.Transactions[j].OccurredAt)
	})

	st.Service.Revenue = round2(st.Service.Revenue)
	st.Service.Commission = round2(st.Service.Commission)
	st.Chemical.Revenue = round2(st.Chemical.Revenue)
	st.Chemical.Commission = round2(st.Chemical.Commission)
	st.Product.Revenue = round2(st.Product.Revenue)
	st.Product.Commission = round2(st.Product.Commission)
	st.TotalRevenue = round2(st.TotalRevenue)
	st.TotalCommission = round2(st.TotalCommission)

	return st
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
