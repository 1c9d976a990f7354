package pos

import (
	"context"
	"time"

	"github.com/shearbook/shearbook/internal/models"
)

type Repository interface {
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	GetProducts(
		ctx context.Context,
		barbershopID uint,
		productIDs []uint,
	) ([]models.Product, error)

	GetSale(
		ctx context.Context,
		barbershopID uint,
		saleID uint,
	) (*models.Sale, error)

	// CreateSale inserts the sale, its lines and the stock decrements in
	// one transaction; a failing step rolls everything back.
	CreateSale(
		ctx context.Context,
		sale *models.Sale,
	) error

	// UpdateSaleAmounts applies line revisions and the new total
	// atomically.
	UpdateSaleAmounts(
		ctx context.Context,
		saleID uint,
		revisions []LineRevision,
		newTotal float64,
	) error

	// DeleteSale removes the sale and restores product stock in one
	// transaction.
	DeleteSale(
		ctx context.Context,
		barbershopID uint,
		saleID uint,
	) error

	ListSales(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Sale, error)
}
