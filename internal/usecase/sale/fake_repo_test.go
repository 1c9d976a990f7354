package sale

import (
	"context"
	"errors"
	"time"

	"github.com/shearbook/shearbook/internal/audit"
	"github.com/shearbook/shearbook/internal/domain/pos"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
)

// fakeRepo is an in-memory pos.Repository mirroring the transactional
// stock behavior of the real store.
type fakeRepo struct {
	barber   models.User
	products map[uint]*models.Product
	sales    map[uint]*models.Sale
	nextID   uint
}

var _ pos.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barber: models.User{ID: 2, BarbershopID: 1, Name: "Bruno", ProductRate: 0.1},
		products: map[uint]*models.Product{
			1: {ID: 1, BarbershopID: 1, Name: "Pomade", Price: 10, Stock: 8, Active: true},
			2: {ID: 2, BarbershopID: 1, Name: "Shampoo", Price: 5, Stock: 3, Active: true},
			3: {ID: 3, BarbershopID: 1, Name: "Old Wax", Price: 7, Stock: 5, Active: false},
		},
		sales:  map[uint]*models.Sale{},
		nextID: 100,
	}
}

func testCollaborators() (*audit.Dispatcher, *realtime.Notifier) {
	return audit.NewDispatcher(audit.New(nil)), realtime.NewNotifier(nil)
}

func (f *fakeRepo) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.User, error) {
	if barberID != f.barber.ID || barbershopID != f.barber.BarbershopID {
		return nil, errors.New("record not found")
	}
	b := f.barber
	return &b, nil
}

func (f *fakeRepo) GetProducts(_ context.Context, barbershopID uint, productIDs []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok && p.BarbershopID == barbershopID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSale(_ context.Context, barbershopID, saleID uint) (*models.Sale, error) {
	s, ok := f.sales[saleID]
	if !ok || s.BarbershopID != barbershopID {
		return nil, errors.New("record not found")
	}
	cp := *s
	cp.Items = make([]models.SaleItem, len(s.Items))
	copy(cp.Items, s.Items)
	return &cp, nil
}

func (f *fakeRepo) CreateSale(_ context.Context, sale *models.Sale) error {
	// All-or-nothing: verify stock for every line before decrementing.
	for _, item := range sale.Items {
		p, ok := f.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			return httperr.ErrBusiness("insufficient_stock")
		}
	}
	for _, item := range sale.Items {
		f.products[item.ProductID].Stock -= item.Quantity
	}

	f.nextID++
	sale.ID = f.nextID
	sale.CreatedAt = time.Now()
	cp := *sale
	f.sales[sale.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateSaleAmounts(_ context.Context, saleID uint, revisions []pos.LineRevision, newTotal float64) error {
	s, ok := f.sales[saleID]
	if !ok {
		return errors.New("record not found")
	}
	for _, rev := range revisions {
		for i := range s.Items {
			if s.Items[i].ProductID == rev.ProductID {
				s.Items[i].UnitPrice = rev.UnitPrice
				s.Items[i].Subtotal = rev.Subtotal
			}
		}
	}
	s.Total = newTotal
	return nil
}

func (f *fakeRepo) DeleteSale(_ context.Context, barbershopID, saleID uint) error {
	s, ok := f.sales[saleID]
	if !ok || s.BarbershopID != barbershopID {
		return httperr.ErrBusiness("sale_not_found")
	}
	for _, item := range s.Items {
		if p, ok := f.products[item.ProductID]; ok {
			p.Stock += item.Quantity
		}
	}
	delete(f.sales, saleID)
	return nil
}

func (f *fakeRepo) ListSales(_ context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Sale, error) {
	var out []models.Sale
	for _, s := range f.sales {
		if s.BarbershopID != barbershopID {
			continue
		}
		if barberID != 0 && s.BarberID != barberID {
			continue
		}
		if s.CreatedAt.Before(start) || !s.CreatedAt.Before(end) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}
