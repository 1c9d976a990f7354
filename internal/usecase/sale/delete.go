package sale

import (
	"context"

	"github.com/shearbook/shearbook/internal/audit"
	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/realtime"
)

type DeleteSale struct {
	repo  pos.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewDeleteSale(
	repo pos.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *DeleteSale {
	return &DeleteSale{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

// Execute voids a sale, restoring product stock in the same transaction
// that removes the lines and the parent row.
func (uc *DeleteSale) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	saleID uint,
) error {

	if err := uc.repo.DeleteSale(ctx, barbershopID, saleID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "sale_deleted",
		Entity:       "sale",
		EntityID:     &saleID,
	})

	uc.rt.Publish(realtime.Change{
		Entity:   "sales",
		Action:   "deleted",
		EntityID: saleID,
		ShopID:   barbershopID,
	})

	return nil
}
