package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/models"
)

func at(day, hm string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", day+" "+hm)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// Back-to-back slots share an endpoint and do not conflict.
	assert.False(t, Overlaps(
		at("2025-02-01", "14:00"), at("2025-02-01", "14:30"),
		at("2025-02-01", "14:30"), at("2025-02-01", "15:00"),
	))

	assert.True(t, Overlaps(
		at("2025-02-01", "14:00"), at("2025-02-01", "14:30"),
		at("2025-02-01", "14:15"), at("2025-02-01", "14:45"),
	))

	assert.True(t, Overlaps(
		at("2025-02-01", "14:00"), at("2025-02-01", "15:00"),
		at("2025-02-01", "14:15"), at("2025-02-01", "14:30"),
	))
}

func TestDetectConflicts_OverlappingBooking(t *testing.T) {
	existing := []models.Appointment{
		{
			ID:        7,
			Client:    models.Client{Name: "Carlos"},
			StartTime: at("2025-02-01", "14:00"),
			EndTime:   at("2025-02-01", "14:30"),
			Status:    "scheduled",
		},
	}

	conflicts := DetectConflicts(
		at("2025-02-01", "14:15"),
		at("2025-02-01", "14:45"),
		existing,
	)

	require.Len(t, conflicts, 1)
	assert.Equal(t, uint(7), conflicts[0].AppointmentID)
	assert.Equal(t, "Carlos", conflicts[0].ClientName)
}

func TestDetectConflicts_IgnoresCancelled(t *testing.T) {
	existing := []models.Appointment{
		{
			ID:        7,
			StartTime: at("2025-02-01", "14:00"),
			EndTime:   at("2025-02-01", "14:30"),
			Status:    "cancelled",
		},
	}

	conflicts := DetectConflicts(
		at("2025-02-01", "14:15"),
		at("2025-02-01", "14:45"),
		existing,
	)

	assert.Empty(t, conflicts)
}

func TestDetectConflicts_DisjointSlot(t *testing.T) {
	existing := []models.Appointment{
		{
			ID:        7,
			StartTime: at("2025-02-01", "14:00"),
			EndTime:   at("2025-02-01", "14:30"),
			Status:    "scheduled",
		},
	}

	conflicts := DetectConflicts(
		at("2025-02-01", "15:00"),
		at("2025-02-01", "15:30"),
		existing,
	)

	assert.Empty(t, conflicts)
}

func TestIsBlocked(t *testing.T) {
	blocks := []models.ScheduleBlock{
		{
			StartTime: at("2025-02-01", "12:00"),
			EndTime:   at("2025-02-01", "13:00"),
		},
	}

	assert.True(t, IsBlocked(at("2025-02-01", "12:30"), at("2025-02-01", "13:30"), blocks))
	assert.False(t, IsBlocked(at("2025-02-01", "13:00"), at("2025-02-01", "13:30"), blocks))
}
