package schedule

import (
	"time"

	"github.com/shearbook/shearbook/internal/models"
)

// Window is a half-open [Start, End) display range.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor derives the default calendar window around an anchor date
// from configured offsets; views never hardcode a fetch range.
func WindowFor(anchor time.Time, behindDays, aheadDays int) Window {
	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	return Window{
		Start: day.AddDate(0, 0, -behindDays),
		End:   day.AddDate(0, 0, aheadDays),
	}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WindowItem is an appointment returned for a display window, flagged
// with its recurring-series membership. Items are always clipped to the
// window; SeriesClipped tells the caller that more members of the same
// group exist outside it, reachable through the expand-series path.
type WindowItem struct {
	Appointment   models.Appointment `json:"appointment"`
	InSeries      bool               `json:"in_series"`
	SeriesClipped bool               `json:"series_clipped"`
}

// AnnotateSeries flags each appointment of a window with series
// membership. totalByGroup carries the full member count per group id,
// irrespective of the window. Pure over its inputs: the same window and
// data always yield the same items and flags.
func AnnotateSeries(apps []models.Appointment, totalByGroup map[string]int64) []WindowItem {
	inWindow := map[string]int64{}
	for _, ap := range apps {
		if ap.RecurrenceGroupID != nil {
			inWindow[*ap.RecurrenceGroupID]++
		}
	}

	items := make([]WindowItem, 0, len(apps))
	for _, ap := range apps {
		it := WindowItem{Appointment: ap}

		if ap.RecurrenceGroupID != nil {
			gid := *ap.RecurrenceGroupID
			it.InSeries = true
			it.SeriesClipped = totalByGroup[gid] > inWindow[gid]
		}

		items = append(items, it)
	}

	return items
}
