package appointment

import (
	"context"
	"time"

	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/timezone"
)

type ListWindowInput struct {
	BarbershopID uint
	BarberID     uint // 0 means every barber of the shop

	// Anchor date for the configured default window, "2006-01-02".
	Anchor string

	// Explicit range overriding the default window, both "2006-01-02".
	From string
	To   string
}

type ListWindow struct {
	repo       domain.Repository
	behindDays int
	aheadDays  int
}

func NewListWindow(
	repo domain.Repository,
	behindDays int,
	aheadDays int,
) *ListWindow {
	return &ListWindow{
		repo:       repo,
		behindDays: behindDays,
		aheadDays:  aheadDays,
	}
}

// Execute fetches the appointments of a display window and flags series
// membership. Items are always clipped to the window; a flagged item
// whose series extends beyond it is fetched in full through
// ExpandSeries, never by silently widening the window.
func (uc *ListWindow) Execute(
	ctx context.Context,
	in ListWindowInput,
) ([]domain.WindowItem, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	var win domain.Window

	switch {
	case in.From != "" && in.To != "":
		from, err1 := time.ParseInLocation("2006-01-02", in.From, loc)
		to, err2 := time.ParseInLocation("2006-01-02", in.To, loc)
		if err1 != nil || err2 != nil || !to.After(from) {
			return nil, httperr.ErrBusiness("invalid_range")
		}
		win = domain.Window{Start: from, End: to.AddDate(0, 0, 1)}

	default:
		anchor := timezone.NowIn(shop.Timezone)
		if in.Anchor != "" {
			a, err := time.ParseInLocation("2006-01-02", in.Anchor, loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_date")
			}
			anchor = a
		}
		win = domain.WindowFor(anchor, uc.behindDays, uc.aheadDays)
	}

	apps, err := uc.repo.ListWindow(ctx, in.BarbershopID, in.BarberID, win.Start, win.End)
	if err != nil {
		return nil, err
	}

	groupIDs := make([]string, 0)
	seen := map[string]bool{}
	for _, ap := range apps {
		if ap.RecurrenceGroupID != nil && !seen[*ap.RecurrenceGroupID] {
			seen[*ap.RecurrenceGroupID] = true
			groupIDs = append(groupIDs, *ap.RecurrenceGroupID)
		}
	}

	counts, err := uc.repo.GroupMemberCounts(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	return domain.AnnotateSeries(apps, counts), nil
}
