package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
)

func TestAppointmentLifecycle(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()

	create := NewCreateAppointment(repo, dispatcher, notifier)
	complete := NewCompleteAppointment(repo, dispatcher, notifier)
	settle := NewSettleAppointment(repo, dispatcher, notifier)
	cancel := NewCancelAppointment(repo, dispatcher, notifier)

	ap, err := create.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	// Settling before completion is rejected.
	_, err = settle.Execute(context.Background(), 1, 2, ap.ID, 75)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	done, err := complete.Execute(context.Background(), 1, 2, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	require.NotNil(t, done.CompletedAt)

	settled, err := settle.Execute(context.Background(), 1, 2, ap.ID, 75)
	require.NoError(t, err)
	require.NotNil(t, settled.FinalAmount)
	assert.Equal(t, 75.0, *settled.FinalAmount)
	assert.Equal(t, 80.0, settled.TotalPrice)

	// A completed appointment cannot be cancelled.
	_, err = cancel.Execute(context.Background(), 1, 2, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelAppointment(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()

	create := NewCreateAppointment(repo, dispatcher, notifier)
	cancel := NewCancelAppointment(repo, dispatcher, notifier)

	ap, err := create.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	cancelled, err := cancel.Execute(context.Background(), 1, 2, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = cancel.Execute(context.Background(), 1, 2, 9999)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
