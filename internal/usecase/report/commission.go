package report

import (
	"context"
	"time"

	"github.com/shearbook/shearbook/internal/domain/billing"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/timezone"
)

type CommissionStatementInput struct {
	BarbershopID uint
	BarberID     uint

	// Period bounds, "2006-01-02"; To is inclusive.
	From string
	To   string
}

type CommissionStatement struct {
	repo billing.Repository
}

func NewCommissionStatement(repo billing.Repository) *CommissionStatement {
	return &CommissionStatement{repo: repo}
}

// Execute builds a barber's statement for a period from completed
// appointments and sales, using the rates captured at booking/sale time.
func (uc *CommissionStatement) Execute(
	ctx context.Context,
	in CommissionStatementInput,
) (billing.Statement, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return billing.Statement{}, err
	}

	loc := timezone.Location(shop.Timezone)

	from, err1 := time.ParseInLocation("2006-01-02", in.From, loc)
	to, err2 := time.ParseInLocation("2006-01-02", in.To, loc)
	if err1 != nil || err2 != nil || to.Before(from) {
		return billing.Statement{}, httperr.ErrBusiness("invalid_range")
	}
	end := to.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListCompletedAppointments(
		ctx, in.BarbershopID, in.BarberID, from, end,
	)
	if err != nil {
		return billing.Statement{}, err
	}

	sales, err := uc.repo.ListSales(
		ctx, in.BarbershopID, in.BarberID, from, end,
	)
	if err != nil {
		return billing.Statement{}, err
	}

	return billing.BuildStatement(in.BarberID, from, end, appointments, sales), nil
}
