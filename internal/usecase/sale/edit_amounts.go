package sale

import (
	"context"

	"github.com/shearbook/shearbook/internal/audit"
	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
)

type EditAmountsInput struct {
	BarbershopID uint
	UserID       uint
	SaleID       uint
	Overrides    []pos.AmountOverride
}

type EditAmounts struct {
	repo  pos.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewEditAmounts(
	repo pos.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *EditAmounts {
	return &EditAmounts{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

// Execute applies manual per-line subtotal overrides (discounts,
// corrections) to a sale. Validation happens entirely before the write;
// the write itself is atomic. The commission basis of edited lines
// changes retroactively, which is the point of an explicit correction.
func (uc *EditAmounts) Execute(
	ctx context.Context,
	in EditAmountsInput,
) (*models.Sale, error) {

	sale, err := uc.repo.GetSale(ctx, in.BarbershopID, in.SaleID)
	if err != nil {
		return nil, httperr.ErrBusiness("sale_not_found")
	}

	revisions, newTotal, err := pos.ReviseAmounts(sale, in.Overrides)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSaleAmounts(ctx, sale.ID, revisions, newTotal); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.UserID,
		Action:       "sale_amounts_edited",
		Entity:       "sale",
		EntityID:     &sale.ID,
		Metadata: map[string]any{
			"old_total": sale.Total,
			"new_total": newTotal,
		},
	})

	uc.rt.Publish(realtime.Change{
		Entity:   "sales",
		Action:   "updated",
		EntityID: sale.ID,
		ShopID:   in.BarbershopID,
	})

	return uc.repo.GetSale(ctx, in.BarbershopID, in.SaleID)
}
