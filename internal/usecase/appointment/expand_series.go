package appointment

import (
	"context"

	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

type ExpandSeries struct {
	repo domain.Repository
}

func NewExpandSeries(repo domain.Repository) *ExpandSeries {
	return &ExpandSeries{repo: repo}
}

// Execute returns every member of a recurrence group regardless of any
// display window. This is the on-demand path for series flagged as
// clipped by the window resolver.
func (uc *ExpandSeries) Execute(
	ctx context.Context,
	barbershopID uint,
	groupID string,
) ([]models.Appointment, error) {

	apps, err := uc.repo.ListSeries(ctx, barbershopID, groupID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, httperr.ErrBusiness("series_not_found")
	}

	return apps, nil
}
