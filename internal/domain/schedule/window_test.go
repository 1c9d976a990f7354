package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/models"
)

func TestWindowFor(t *testing.T) {
	anchor := at("2025-03-15", "17:45")

	win := WindowFor(anchor, 30, 180)

	assert.Equal(t, at("2025-02-13", "00:00"), win.Start)
	assert.Equal(t, at("2025-09-11", "00:00"), win.End)

	// Half-open: the start instant is inside, the end instant is not.
	assert.True(t, win.Contains(win.Start))
	assert.False(t, win.Contains(win.End))
	assert.False(t, win.Contains(win.Start.Add(-time.Minute)))
}

func TestAnnotateSeries_ClippedGroup(t *testing.T) {
	gid := "a4e6f7c2-0000-0000-0000-000000000001"

	apps := []models.Appointment{
		{ID: 1, RecurrenceGroupID: &gid},
		{ID: 2, RecurrenceGroupID: &gid},
		{ID: 3},
	}

	items := AnnotateSeries(apps, map[string]int64{gid: 4})

	require.Len(t, items, 3)

	assert.True(t, items[0].InSeries)
	assert.True(t, items[0].SeriesClipped)
	assert.True(t, items[1].SeriesClipped)

	assert.False(t, items[2].InSeries)
	assert.False(t, items[2].SeriesClipped)
}

func TestAnnotateSeries_FullyVisibleGroup(t *testing.T) {
	gid := "a4e6f7c2-0000-0000-0000-000000000002"

	apps := []models.Appointment{
		{ID: 1, RecurrenceGroupID: &gid},
		{ID: 2, RecurrenceGroupID: &gid},
		{ID: 3, RecurrenceGroupID: &gid},
	}

	items := AnnotateSeries(apps, map[string]int64{gid: 3})

	for _, it := range items {
		assert.True(t, it.InSeries)
		assert.False(t, it.SeriesClipped)
	}
}

func TestAnnotateSeries_Deterministic(t *testing.T) {
	gid := "a4e6f7c2-0000-0000-0000-000000000003"

	apps := []models.Appointment{
		{ID: 1, RecurrenceGroupID: &gid},
		{ID: 2},
	}
	totals := map[string]int64{gid: 5}

	first := AnnotateSeries(apps, totals)
	second := AnnotateSeries(apps, totals)

	assert.Equal(t, first, second)
}
