package appointment

import (
	"context"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/realtime"
)

type DeleteSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	rt    *realtime.Notifier
}

func NewDeleteSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
	rt *realtime.Notifier,
) *DeleteSeries {
	return &DeleteSeries{
		repo:  repo,
		audit: audit,
		rt:    rt,
	}
}

// Execute removes a whole recurrence group in one transaction. There is
// no partial removal: members leave a series only when the series itself
// is deleted.
func (uc *DeleteSeries) Execute(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	groupID string,
) (int64, error) {

	deleted, err := uc.repo.DeleteSeries(ctx, barbershopID, groupID)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &userID,
		Action:       "recurring_series_deleted",
		Entity:       "appointment",
		Metadata: map[string]any{
			"group_id": groupID,
			"deleted":  deleted,
		},
	})

	uc.rt.Publish(realtime.Change{
		Entity: "appointments",
		Action: "deleted",
		ShopID: barbershopID,
	})

	return deleted, nil
}
