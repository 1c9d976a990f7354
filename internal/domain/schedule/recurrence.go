package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shearbook/shearbook/internal/models"
)

// Grouping thresholds. A bucket needs at least MinSeriesLength members
// to count as evidence of recurrence, and every consecutive day-gap must
// stay within MaxGapDeviationDays of the bucket's mean gap. One outlier
// gap disqualifies the whole bucket; there is no partial grouping.
const (
	MinSeriesLength     = 3
	MaxGapDeviationDays = 1.0
)

// Candidate is an ungrouped, non-cancelled appointment considered for
// series detection.
type Candidate struct {
	AppointmentID uint
	ClientID      uint
	BarberID      uint
	ServiceSetKey string
	StartTime     time.Time
}

// GroupProposal assigns one fresh group id to every member of an
// accepted bucket.
type GroupProposal struct {
	GroupID        string
	IntervalDays   int
	AppointmentIDs []uint
}

// ServiceSetKey canonicalizes a booked service combination: sorted
// service ids joined, so {cut, beard} and {beard, cut} bucket together.
func ServiceSetKey(lines []models.AppointmentService) string {
	ids := make([]int, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, int(l.ServiceID))
	}
	sort.Ints(ids)

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, "-")
}

func CandidateFrom(ap models.Appointment) Candidate {
	return Candidate{
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		BarberID:      ap.BarberID,
		ServiceSetKey: ServiceSetKey(ap.Services),
		StartTime:     ap.StartTime,
	}
}

// ProposeGroups partitions candidates into buckets keyed by
// (client, barber, service set, time of day, weekday) and accepts a
// bucket as a recurring series when it has MinSeriesLength or more
// members and its consecutive day-gaps are uniform within
// MaxGapDeviationDays of their mean. Proposals are ordered by the
// earliest appointment of each series so runs are deterministic.
func ProposeGroups(candidates []Candidate) []GroupProposal {
	buckets := map[string][]Candidate{}
	for _, c := range candidates {
		k := bucketKey(c)
		buckets[k] = append(buckets[k], c)
	}

	var proposals []GroupProposal

	for _, members := range buckets {
		if len(members) < MinSeriesLength {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			return members[i].StartTime.Before(members[j].StartTime)
		})

		gaps := make([]int, 0, len(members)-1)
		for i := 1; i < len(members); i++ {
			gaps = append(gaps, daysBetween(members[i-1].StartTime, members[i].StartTime))
		}

		mean := meanGap(gaps)
		uniform := true
		for _, g := range gaps {
			if deviation(float64(g), mean) > MaxGapDeviationDays {
				uniform = false
				break
			}
		}
		if !uniform {
			continue
		}

		ids := make([]uint, len(members))
		for i, m := range members {
			ids[i] = m.AppointmentID
		}

		proposals = append(proposals, GroupProposal{
			GroupID:        uuid.NewString(),
			IntervalDays:   int(mean + 0.5),
			AppointmentIDs: ids,
		})
	}

	sort.Slice(proposals, func(i, j int) bool {
		return proposals[i].AppointmentIDs[0] < proposals[j].AppointmentIDs[0]
	})

	return proposals
}

func bucketKey(c Candidate) string {
	return fmt.Sprintf(
		"%d|%d|%s|%02d:%02d|%d",
		c.ClientID,
		c.BarberID,
		c.ServiceSetKey,
		c.StartTime.Hour(),
		c.StartTime.Minute(),
		int(c.StartTime.Weekday()),
	)
}

// daysBetween counts calendar days between two wall-clock instants,
// ignoring the time-of-day component.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

func meanGap(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}
	sum := 0
	for _, g := range gaps {
		sum += g
	}
	return float64(sum) / float64(len(gaps))
}

func deviation(v, mean float64) float64 {
	if v > mean {
		return v - mean
	}
	return mean - v
}
