package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

func TestCancel(t *testing.T) {
	now := at("2025-02-01", "10:00")

	ap := &models.Appointment{Status: "scheduled"}
	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, "cancelled", ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)

	// Cancelling twice is rejected.
	err := Cancel(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestComplete(t *testing.T) {
	now := at("2025-02-01", "10:00")

	ap := &models.Appointment{Status: "cancelled"}
	err := Complete(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	ap = &models.Appointment{Status: "scheduled"}
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestSettle(t *testing.T) {
	ap := &models.Appointment{Status: "scheduled", TotalPrice: 50}
	err := Settle(ap, 45)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	ap.Status = "completed"

	err = Settle(ap, 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_amount"))

	require.NoError(t, Settle(ap, 45))
	require.NotNil(t, ap.FinalAmount)
	assert.Equal(t, 45.0, *ap.FinalAmount)

	// Booked total stays untouched.
	assert.Equal(t, 50.0, ap.TotalPrice)
}
