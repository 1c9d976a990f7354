package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

func seedGrouped(repo *fakeRepo, gid string, days ...string) {
	for _, d := range days {
		start, err := time.Parse("2006-01-02 15:04", d+" 10:00")
		if err != nil {
			panic(err)
		}
		repo.nextID++
		g := gid
		repo.appointments = append(repo.appointments, models.Appointment{
			ID:                repo.nextID,
			BarbershopID:      1,
			BarberID:          2,
			ClientID:          10,
			StartTime:         start,
			EndTime:           start.Add(30 * time.Minute),
			Status:            "scheduled",
			RecurrenceGroupID: &g,
		})
	}
}

func TestListWindow_ClipsAndFlagsSeries(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListWindow(repo, 30, 180)

	// Series of four; the explicit range sees only the middle two.
	seedGrouped(repo, "g-1", "2025-01-06", "2025-01-13", "2025-01-20", "2025-01-27")

	items, err := uc.Execute(context.Background(), ListWindowInput{
		BarbershopID: 1,
		BarberID:     2,
		From:         "2025-01-10",
		To:           "2025-01-22",
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	for _, it := range items {
		assert.True(t, it.InSeries)
		assert.True(t, it.SeriesClipped)
	}
}

func TestListWindow_FullyContainedSeriesNotClipped(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListWindow(repo, 30, 180)

	seedGrouped(repo, "g-2", "2025-01-06", "2025-01-13", "2025-01-20")

	items, err := uc.Execute(context.Background(), ListWindowInput{
		BarbershopID: 1,
		BarberID:     2,
		From:         "2025-01-01",
		To:           "2025-01-31",
	})
	require.NoError(t, err)
	require.Len(t, items, 3)

	for _, it := range items {
		assert.True(t, it.InSeries)
		assert.False(t, it.SeriesClipped)
	}
}

func TestListWindow_DefaultWindowAroundAnchor(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListWindow(repo, 30, 180)

	seedGrouped(repo, "g-3", "2025-01-06")

	// Anchor far away: nothing visible.
	items, err := uc.Execute(context.Background(), ListWindowInput{
		BarbershopID: 1,
		BarberID:     2,
		Anchor:       "2026-06-01",
	})
	require.NoError(t, err)
	assert.Empty(t, items)

	// Anchor on the series: visible.
	items, err = uc.Execute(context.Background(), ListWindowInput{
		BarbershopID: 1,
		BarberID:     2,
		Anchor:       "2025-01-10",
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListWindow_InvalidRange(t *testing.T) {
	repo := newFakeRepo()
	uc := NewListWindow(repo, 30, 180)

	_, err := uc.Execute(context.Background(), ListWindowInput{
		BarbershopID: 1,
		From:         "2025-01-20",
		To:           "2025-01-10",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}

func TestExpandAndDeleteSeries(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()

	seedGrouped(repo, "g-4", "2025-01-06", "2025-01-13", "2025-01-20")

	expand := NewExpandSeries(repo)
	apps, err := expand.Execute(context.Background(), 1, "g-4")
	require.NoError(t, err)
	assert.Len(t, apps, 3)

	_, err = expand.Execute(context.Background(), 1, "missing")
	assert.True(t, httperr.IsBusiness(err, "series_not_found"))

	del := NewDeleteSeries(repo, dispatcher, notifier)
	deleted, err := del.Execute(context.Background(), 1, 2, "g-4")
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.Empty(t, repo.appointments)

	_, err = del.Execute(context.Background(), 1, 2, "g-4")
	assert.True(t, httperr.IsBusiness(err, "series_not_found"))
}
