package appointment

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
	"github.com/shearbook/shearbook/internal/httperr"
	"github.com/shearbook/shearbook/internal/models"
	"github.com/shearbook/shearbook/internal/realtime"
)

// fakeRepo is an in-memory schedule.Repository for use case tests.
type fakeRepo struct {
	shop     models.Barbershop
	barbers  map[uint]models.User
	services map[uint]models.Service

	appointments []models.Appointment
	blocks       []models.ScheduleBlock
	clients      []models.Client

	nextID uint

	// failAssignAfter fails AssignRecurrenceGroup once this many calls
	// have succeeded; negative never fails.
	failAssignAfter int
	assignCalls     int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: models.Barbershop{
			ID:                1,
			Name:              "Main Street Cuts",
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
		},
		barbers: map[uint]models.User{
			2: {ID: 2, BarbershopID: 1, Name: "Bruno", ServiceRate: 0.5, ChemicalRate: 0.4, ProductRate: 0.1},
		},
		services: map[uint]models.Service{
			5: {ID: 5, BarbershopID: 1, Name: "Cut", Price: 50, DurationMin: 30, Active: true},
			6: {ID: 6, BarbershopID: 1, Name: "Color", Price: 30, DurationMin: 45, Chemical: true, Active: true},
			7: {ID: 7, BarbershopID: 1, Name: "Old Fade", Price: 20, DurationMin: 20, Active: false},
		},
		nextID:          100,
		failAssignAfter: -1,
	}
}

// Quiet collaborators: discarding audit sink and no-op notifier.
func testCollaborators() (*audit.Dispatcher, *realtime.Notifier) {
	return audit.NewDispatcher(audit.New(nil)), realtime.NewNotifier(nil)
}

func (f *fakeRepo) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	if id != f.shop.ID {
		return nil, errors.New("record not found")
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeRepo) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.User, error) {
	b, ok := f.barbers[barberID]
	if !ok || b.BarbershopID != barbershopID {
		return nil, errors.New("record not found")
	}
	return &b, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.BarbershopID == barbershopID && c.Name == name && c.Phone == phone {
			return &c, nil
		}
	}
	f.nextID++
	c := models.Client{ID: f.nextID, BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeRepo) GetServices(_ context.Context, barbershopID uint, serviceIDs []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range serviceIDs {
		if svc, ok := f.services[id]; ok && svc.BarbershopID == barbershopID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointmentGuarded(_ context.Context, ap *models.Appointment, _ bool) error {
	f.nextID++
	ap.ID = f.nextID
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) CreateAppointmentBatch(_ context.Context, aps []models.Appointment) error {
	for i := range aps {
		f.nextID++
		aps[i].ID = f.nextID
		f.appointments = append(f.appointments, aps[i])
	}
	return nil
}

func (f *fakeRepo) GetAppointmentForBarber(_ context.Context, appointmentID, barberID uint) (*models.Appointment, error) {
	for _, ap := range f.appointments {
		if ap.ID == appointmentID && ap.BarberID == barberID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return errors.New("record not found")
}

func (f *fakeRepo) ListForBarberInRange(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && domain.Overlaps(start, end, ap.StartTime, ap.EndTime) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListWindow(_ context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarbershopID != barbershopID {
			continue
		}
		if barberID != 0 && ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) GroupMemberCounts(_ context.Context, groupIDs []string) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, gid := range groupIDs {
		for _, ap := range f.appointments {
			if ap.RecurrenceGroupID != nil && *ap.RecurrenceGroupID == gid {
				counts[gid]++
			}
		}
	}
	return counts, nil
}

func (f *fakeRepo) ListSeries(_ context.Context, barbershopID uint, groupID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarbershopID == barbershopID && ap.RecurrenceGroupID != nil && *ap.RecurrenceGroupID == groupID {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) DeleteSeries(_ context.Context, barbershopID uint, groupID string) (int64, error) {
	var kept []models.Appointment
	var deleted int64
	for _, ap := range f.appointments {
		if ap.BarbershopID == barbershopID && ap.RecurrenceGroupID != nil && *ap.RecurrenceGroupID == groupID {
			deleted++
			continue
		}
		kept = append(kept, ap)
	}
	if deleted == 0 {
		return 0, httperr.ErrBusiness("series_not_found")
	}
	f.appointments = kept
	return deleted, nil
}

func (f *fakeRepo) ListUngroupedCandidates(_ context.Context, barbershopID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarbershopID == barbershopID && ap.RecurrenceGroupID == nil && ap.Status != "cancelled" {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) AssignRecurrenceGroup(_ context.Context, groupID string, appointmentIDs []uint) error {
	if f.failAssignAfter >= 0 && f.assignCalls >= f.failAssignAfter {
		return errors.New("connection reset")
	}
	f.assignCalls++

	ids := map[uint]bool{}
	for _, id := range appointmentIDs {
		ids[id] = true
	}
	for i := range f.appointments {
		if ids[f.appointments[i].ID] {
			gid := groupID
			f.appointments[i].RecurrenceGroupID = &gid
		}
	}
	return nil
}

func (f *fakeRepo) ListBlocksInRange(_ context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.ScheduleBlock, error) {
	var out []models.ScheduleBlock
	for _, b := range f.blocks {
		if b.BarbershopID != barbershopID {
			continue
		}
		if barberID != 0 && b.BarberID != nil && *b.BarberID != barberID {
			continue
		}
		if domain.Overlaps(start, end, b.StartTime, b.EndTime) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateBlockWithChildren(_ context.Context, parent *models.ScheduleBlock, children []models.ScheduleBlock) error {
	f.nextID++
	parent.ID = f.nextID
	f.blocks = append(f.blocks, *parent)
	for i := range children {
		f.nextID++
		children[i].ID = f.nextID
		children[i].ParentBlockID = &parent.ID
		f.blocks = append(f.blocks, children[i])
	}
	return nil
}

func (f *fakeRepo) DeleteBlock(_ context.Context, barbershopID, blockID uint) error {
	var kept []models.ScheduleBlock
	found := false
	for _, b := range f.blocks {
		if b.BarbershopID == barbershopID && (b.ID == blockID || (b.ParentBlockID != nil && *b.ParentBlockID == blockID)) {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return httperr.ErrBusiness("block_not_found")
	}
	f.blocks = kept
	return nil
}
