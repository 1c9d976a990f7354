package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
)

type fakeRepo struct {
	shop         models.Barbershop
	appointments []models.Appointment
	sales        []models.Sale
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	shop := f.shop
	return &shop, nil
}

func (f *fakeRepo) ListCompletedAppointments(_ context.Context, _, _ uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListSales(_ context.Context, _, _ uint, start, end time.Time) ([]models.Sale, error) {
	var out []models.Sale
	for _, s := range f.sales {
		if !s.CreatedAt.Before(start) && s.CreatedAt.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func ts(day, hm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", day+" "+hm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCommissionStatement_InclusivePeriod(t *testing.T) {
	repo := &fakeRepo{
		shop: models.Barbershop{ID: 1, Timezone: "UTC"},
		appointments: []models.Appointment{
			{
				ID:         1,
				StartTime:  ts("2025-03-31", "18:00"),
				Status:     "completed",
				TotalPrice: 50,
				Services: []models.AppointmentService{
					{Service: models.Service{Name: "Cut"}, Price: 50, CommissionRate: 0.5},
				},
			},
			{
				ID:         2,
				StartTime:  ts("2025-04-01", "09:00"),
				Status:     "completed",
				TotalPrice: 50,
			},
		},
	}

	uc := NewCommissionStatement(repo)

	st, err := uc.Execute(context.Background(), CommissionStatementInput{
		BarbershopID: 1,
		BarberID:     2,
		From:         "2025-03-01",
		To:           "2025-03-31",
	})
	require.NoError(t, err)

	// The appointment on the final day of the period counts; the one
	// past it does not.
	require.Len(t, st.Transactions, 1)
	assert.Equal(t, 50.0, st.TotalRevenue)
	assert.Equal(t, 25.0, st.TotalCommission)
}

func TestCommissionStatement_InvalidRange(t *testing.T) {
	repo := &fakeRepo{shop: models.Barbershop{ID: 1, Timezone: "UTC"}}
	uc := NewCommissionStatement(repo)

	_, err := uc.Execute(context.Background(), CommissionStatementInput{
		BarbershopID: 1,
		From:         "2025-04-01",
		To:           "2025-03-01",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))

	_, err = uc.Execute(context.Background(), CommissionStatementInput{
		BarbershopID: 1,
		From:         "bad",
		To:           "2025-03-01",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}
