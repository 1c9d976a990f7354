package appointment

import (
	"context"
	"fmt"

	"github.com/shearbook/shearbook/internal/audit"
	domain "github.com/shearbook/shearbook/internal/domain/schedule"
)

// BackfillReport summarizes one grouping run. When an assignment fails
// mid-run the report still carries what was applied; the error wraps the
// failing group so the caller can decide whether to retry the rest.
type BackfillReport struct {
	GroupsProposed      int `json:"groups_proposed"`
	GroupsApplied       int `json:"groups_applied"`
	GroupsRemaining     int `json:"groups_remaining"`
	AppointmentsGrouped int `json:"appointments_grouped"`
}

type BackfillGroups struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBackfillGroups(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BackfillGroups {
	return &BackfillGroups{
		repo:  repo,
		audit: audit,
	}
}

// Execute detects recurring series among ungrouped, non-cancelled
// appointments of a shop and persists one fresh group id per accepted
// bucket, group by group.
func (uc *BackfillGroups) Execute(
	ctx context.Context,
	barbershopID uint,
) (BackfillReport, error) {

	apps, err := uc.repo.ListUngroupedCandidates(ctx, barbershopID)
	if err != nil {
		return BackfillReport{}, err
	}

	candidates := make([]domain.Candidate, 0, len(apps))
	for _, ap := range apps {
		candidates = append(candidates, domain.CandidateFrom(ap))
	}

	proposals := domain.ProposeGroups(candidates)

	report := BackfillReport{GroupsProposed: len(proposals)}

	for i, p := range proposals {
		if err := uc.repo.AssignRecurrenceGroup(ctx, p.GroupID, p.AppointmentIDs); err != nil {
			report.GroupsRemaining = len(proposals) - i
			return report, fmt.Errorf("assign group %s (%d of %d): %w",
				p.GroupID, i+1, len(proposals), err)
		}

		report.GroupsApplied++
		report.AppointmentsGrouped += len(p.AppointmentIDs)
	}

	if report.GroupsApplied > 0 {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: barbershopID,
			Action:       "recurrence_backfill",
			Entity:       "appointment",
			Metadata:     report,
		})
	}

	return report, nil
}
