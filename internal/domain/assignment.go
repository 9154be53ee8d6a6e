package domain

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "pending"
	AssignmentStatusAccepted  AssignmentStatus = "accepted"
	AssignmentStatusApproved  AssignmentStatus = "approved"
	AssignmentStatusActive    AssignmentStatus = "active"
	AssignmentStatusDone      AssignmentStatus = "done"
	AssignmentStatusCompleted AssignmentStatus = "completed"
	AssignmentStatusRejected  AssignmentStatus = "rejected"
	AssignmentStatusCancelled AssignmentStatus = "cancelled"
)

// BedAssignment places a resident in a bed for a bounded or open-ended
// period. A nil UnassignedAt means the placement is still in effect.
// Historical rows for the same bed are kept, so overlaps can exist in the
// data; the occupancy package reconciles them.
type BedAssignment struct {
	ID           int64            `json:"id"`
	BedID        int64            `json:"bedID"`
	ResidentID   *int64           `json:"residentID"`
	Status       AssignmentStatus `json:"status"`
	AssignedAt   *time.Time       `json:"assignedAt"`
	UnassignedAt *time.Time       `json:"unassignedAt"`
	CreatedAt    time.Time        `json:"createdAt"`
	Version      int32            `json:"-"`
}

// CarePlanAssignment subscribes a resident to a care plan. Nil StartAt means
// effective immediately, nil EndAt means indefinite.
type CarePlanAssignment struct {
	ID         int64            `json:"id"`
	CarePlanID int64            `json:"carePlanID"`
	ResidentID int64            `json:"residentID"`
	Status     AssignmentStatus `json:"status"`
	StartAt    *time.Time       `json:"startAt"`
	EndAt      *time.Time       `json:"endAt"`
	CreatedAt  time.Time        `json:"createdAt"`
	Version    int32            `json:"-"`
}
