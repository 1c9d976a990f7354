package sale

import (
	"context"
	"math"

	"github.com/shearbook/shearbook/internal/audit"
	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
)

type CreateSaleItemInput struct {
	ProductID uint
	Quantity  int
}

type CreateSaleInput struct {
	BarbershopID uint
	BarberID     uint
	ClientID     *uint
	Items        []CreateSaleItemInput
	Notes        string
}

type CreateSale struct {
	repo  pos.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewCreateSale(
	repo pos.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *CreateSale {
	return &CreateSale{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

// Execute records a point-of-sale transaction. Unit price and the
// barber's product commission rate are captured per line as of now, and
// the sale, its lines and the stock decrements land in one transaction.
func (uc *CreateSale) Execute(
	ctx context.Context,
	in CreateSaleInput,
) (*models.Sale, error) {

	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("no_items")
	}
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := uc.repo.GetProducts(ctx, in.BarbershopID, ids)
	if err != nil {
		return nil, err
	}

	byID := map[uint]models.Product{}
	for _, p := range products {
		byID[p.ID] = p
	}

	sale := &models.Sale{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ClientID:     in.ClientID,
		Notes:        in.Notes,
	}

	for _, item := range in.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		if !product.Active {
			return nil, httperr.ErrBusiness("product_inactive")
		}

		subtotal := round2(product.Price * float64(item.Quantity))

		sale.Items = append(sale.Items, models.SaleItem{
			ProductID:      product.ID,
			Quantity:       item.Quantity,
			UnitPrice:      product.Price,
			CommissionRate: barber.ProductRate,
			Subtotal:       subtotal,
		})

		sale.Total = round2(sale.Total + subtotal)
	}

	if err := uc.repo.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "sale_created",
		Entity:       "sale",
		EntityID:     &sale.ID,
	})

	uc.rt.Publish(realtime.Change{
		Entity:   "sales",
		Action:   "created",
		EntityID: sale.ID,
		ShopID:   in.BarbershopID,
	})

	return sale, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
