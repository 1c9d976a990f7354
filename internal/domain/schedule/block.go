package schedule

import (
	"time"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

// ValidateBlockInterval enforces the child-block invariant: a non-empty
// interval fully contained within one calendar day.
func ValidateBlockInterval(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrBusiness("invalid_block_interval")
	}

	sy, sm, sd := start.Date()
	// The end instant may sit exactly on the next midnight.
	ey, em, ed := end.Add(-time.Nanosecond).Date()
	if sy != ey || sm != em || sd != ed {
		return httperr.ErrBusiness("block_spans_days")
	}

	return nil
}

// ExpandWeekly generates the recurring children of a parent block, one
// per week after the parent's own interval, up to and including the
// week of `until`.
func ExpandWeekly(parent models.ScheduleBlock, until time.Time) []models.ScheduleBlock {
	var children []models.ScheduleBlock

	start := parent.StartTime.AddDate(0, 0, 7)
	end := parent.EndTime.AddDate(0, 0, 7)

	for !start.After(until) {
		children = append(children, models.ScheduleBlock{
			BarbershopID: parent.BarbershopID,
			BarberID:     parent.BarberID,
			StartTime:    start,
			EndTime:      end,
			Reason:       parent.Reason,
		})

		start = start.AddDate(0, 0, 7)
		end = end.AddDate(0, 0, 7)
	}

	return children
}

// ValidateSiblings rejects a child set where two blocks for the same
// barber overlap.
func ValidateSiblings(children []models.ScheduleBlock) error {
	for i := range children {
		for j := i + 1; j < len(children); j++ {
			a, b := children[i], children[j]
			if !sameBarber(a.BarberID, b.BarberID) {
				continue
			}
			if Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				return httperr.ErrBusiness("block_overlap")
			}
		}
	}
	return nil
}

func sameBarber(a, b *uint) bool {
	if a == nil || b == nil {
		// A shop-wide block covers every barber.
		return true
	}
	return *a == *b
}
