// Package occupancy derives bed/room occupancy, the currently effective
// assignment per target, and monthly cost summaries from assignment
// snapshots. Everything here is pure computation over already-fetched data;
// handlers re-run it on every request.
package occupancy

import (
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

// Record is the common shape the reconciler works on. TargetID is the bed id
// for bed assignments and the care plan id for care plan assignments.
type Record struct {
	ID         int64
	TargetID   int64
	ResidentID *int64
	Status     domain.AssignmentStatus
	StartAt    *time.Time
	EndAt      *time.Time
	CreatedAt  time.Time
}

func FromBedAssignments(assignments []*domain.BedAssignment) []Record {
	records := make([]Record, 0, len(assignments))
	for _, a := range assignments {
		records = append(records, Record{
			ID:         a.ID,
			TargetID:   a.BedID,
			ResidentID: a.ResidentID,
			Status:     a.Status,
			StartAt:    a.AssignedAt,
			EndAt:      a.UnassignedAt,
			CreatedAt:  a.CreatedAt,
		})
	}
	return records
}

func FromCarePlanAssignments(assignments []*domain.CarePlanAssignment) []Record {
	records := make([]Record, 0, len(assignments))
	for _, a := range assignments {
		residentID := a.ResidentID
		records = append(records, Record{
			ID:         a.ID,
			TargetID:   a.CarePlanID,
			ResidentID: &residentID,
			Status:     a.Status,
			StartAt:    a.StartAt,
			EndAt:      a.EndAt,
			CreatedAt:  a.CreatedAt,
		})
	}
	return records
}
