package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

type PosGormRepository struct {
	db *gorm.DB
}

func NewPosGormRepository(db *gorm.DB) *PosGormRepository {
	return &PosGormRepository{db: db}
}

func (r *PosGormRepository) GetBarber(
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

func (r *PosGormRepository) GetProducts(
	ctx context.Context,
	barbershopID uint,
	productIDs []uint,
) ([]models.Product, error) {

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND id IN ?", barbershopID, productIDs).
		Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PosGormRepository) GetSale(
	ctx context.Context,
	barbershopID uint,
	saleID uint,
) (*models.Sale, error) {

	var sale models.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Client").
		Where("id = ? AND barbershop_id = ?", saleID, barbershopID).
		First(&sale).Error; err != nil {
		return nil, err
	}

	return &sale, nil
}

// --------------------------------------------------
// Sale creation: lines + stock decrement, one transaction
// --------------------------------------------------

func (r *PosGormRepository) CreateSale(
	ctx context.Context,
	sale *models.Sale,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, item := range sale.Items {

			var product models.Product
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND barbershop_id = ?", item.ProductID, sale.BarbershopID).
				First(&product).Error; err != nil {
				return httperr.ErrBusiness("product_not_found")
			}

			if product.Stock < item.Quantity {
				return httperr.ErrBusiness("insufficient_stock")
			}

			if err := tx.
				Model(&models.Product{}).
				Where("id = ?", product.ID).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		return tx.Create(sale).Error
	})
}

func (r *PosGormRepository) UpdateSaleAmounts(
	ctx context.Context,
	saleID uint,
	revisions []pos.LineRevision,
	newTotal float64,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		for _, rev := range revisions {
			if err := tx.
				Model(&models.SaleItem{}).
				Where("sale_id = ? AND product_id = ?", saleID, rev.ProductID).
				Updates(map[string]any{
					"unit_price": rev.UnitPrice,
					"subtotal":   rev.Subtotal,
				}).Error; err != nil {
				return err
			}
		}

		return tx.
			Model(&models.Sale{}).
			Where("id = ?", saleID).
			Update("total", newTotal).Error
	})
}

func (r *PosGormRepository) DeleteSale(
	ctx context.Context,
	barbershopID uint,
	saleID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var sale models.Sale
		if err := tx.
			Preload("Items").
			Where("id = ? AND barbershop_id = ?", saleID, barbershopID).
			First(&sale).Error; err != nil {
			return err
		}

		// Return sold quantities to stock before removing the lines.
		for _, item := range sale.Items {
			if err := tx.
				Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		if err := tx.
			Where("sale_id = ?", sale.ID).
			Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}

		return tx.Delete(&sale).Error
	})
}

func (r *PosGormRepository) ListSales(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Sale, error) {

	var sales []models.Sale

	q := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Client").
		Where(
			"barbershop_id = ? AND created_at >= ? AND created_at < ?",
			barbershopID, start, end,
		)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	if err := q.Order("created_at ASC").Find(&sales).Error; err != nil {
		return nil, err
	}

	return sales, nil
}

// Compile-time check
var _ pos.Repository = (*PosGormRepository)(nil)
