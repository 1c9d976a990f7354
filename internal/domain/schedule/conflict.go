package schedule

import (
	"time"

	"github.com/shearbook/shearbook/internal/models"
)

// Conflict describes an existing booking that overlaps a proposed one.
type Conflict struct {
	AppointmentID uint      `json:"appointment_id"`
	ClientName    string    `json:"client_name"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// Overlaps applies the half-open interval rule: [s1,e1) and [s2,e2)
// conflict iff s1 < e2 and s2 < e1. Touching endpoints do not conflict.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// DetectConflicts returns every non-cancelled appointment of the same
// barber overlapping [start, end). Detection never blocks a booking by
// itself; callers surface the list for an explicit override.
func DetectConflicts(start, end time.Time, existing []models.Appointment) []Conflict {
	conflicts := []Conflict{}

	for _, ap := range existing {
		if ap.Status == string(StatusCancelled) {
			continue
		}
		if !Overlaps(start, end, ap.StartTime, ap.EndTime) {
			continue
		}

		conflicts = append(conflicts, Conflict{
			AppointmentID: ap.ID,
			ClientName:    ap.Client.Name,
			StartTime:     ap.StartTime,
			EndTime:       ap.EndTime,
		})
	}

	return conflicts
}

// IsBlocked reports whether [start, end) touches a schedule block.
// Blocks are hard unavailability; there is no override for them.
func IsBlocked(start, end time.Time, blocks []models.ScheduleBlock) bool {
	for _, b := range blocks {
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
