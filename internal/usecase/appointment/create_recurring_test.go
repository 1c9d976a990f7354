package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
)

func recurringInput() CreateRecurringInput {
	return CreateRecurringInput{
		BarbershopID: 1,
		BarberID:     2,
		ClientName:   "Carlos",
		ClientPhone:  "555-0101",
		ServiceIDs:   []uint{5},
		Date:         futureDay(7),
		Time:         "10:00",
		Occurrences:  4,
		IntervalDays: 7,
	}
}

func TestCreateRecurring_SharedGroupID(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	uc := NewCreateRecurring(repo, dispatcher, notifier)

	batch, err := uc.Execute(context.Background(), recurringInput())
	require.NoError(t, err)
	require.Len(t, batch, 4)

	gid := batch[0].RecurrenceGroupID
	require.NotNil(t, gid)

	for i, ap := range batch {
		require.NotNil(t, ap.RecurrenceGroupID)
		assert.Equal(t, *gid, *ap.RecurrenceGroupID)

		if i > 0 {
			assert.Equal(t, 7*24.0, ap.StartTime.Sub(batch[i-1].StartTime).Hours())
		}
	}

	assert.Len(t, repo.appointments, 4)
}

func TestCreateRecurring_Bounds(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()
	uc := NewCreateRecurring(repo, dispatcher, notifier)

	in := recurringInput()
	in.Occurrences = 1
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_occurrences"))

	in = recurringInput()
	in.Occurrences = 53
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_occurrences"))

	in = recurringInput()
	in.IntervalDays = 91
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_interval"))
}

func TestCreateRecurring_ConflictAbortsWholeBatch(t *testing.T) {
	repo := newFakeRepo()
	dispatcher, notifier := testCollaborators()

	// Book a single appointment colliding with the third occurrence.
	single := NewCreateAppointment(repo, dispatcher, notifier)
	singleIn := baseInput()
	singleIn.Date = futureDay(21)
	singleIn.Time = "10:00"
	singleIn.ServiceIDs = []uint{5}
	_, err := single.Execute(context.Background(), singleIn)
	require.NoError(t, err)

	uc := NewCreateRecurring(repo, dispatcher, notifier)

	_, err = uc.Execute(context.Background(), recurringInput())

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)

	// No occurrence was stored.
	assert.Len(t, repo.appointments, 1)

	// The override books all of them.
	in := recurringInput()
	in.AllowConflict = true
	batch, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, batch, 4)
	assert.Len(t, repo.appointments, 5)
}
