package occupancy

import (
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

// IsActive reports whether an assignment is in effect at the given instant.
// An explicit "active" status wins over any date fields. A "done" assignment
// stays in effect until its end date passes; a nil end date means indefinite.
// "accepted"/"approved" assignments are in effect once their start date has
// arrived. Missing dates always degrade toward "in effect", never to an
// error.
func IsActive(rec Record, now time.Time) bool {
	switch rec.Status {
	case domain.AssignmentStatusActive:
		return true
	case domain.AssignmentStatusDone:
		return rec.EndAt == nil || rec.EndAt.After(now)
	case domain.AssignmentStatusAccepted, domain.AssignmentStatusApproved:
		return !HasNotStarted(rec, now)
	default:
		return false
	}
}

// HasNotStarted reports whether an assignment's start date is still in the
// future. A nil start date counts as already started.
func HasNotStarted(rec Record, now time.Time) bool {
	return rec.StartAt != nil && rec.StartAt.After(now)
}

type ExpiryState string

const (
	ExpiryNone   ExpiryState = "none"
	ExpiringSoon ExpiryState = "expiring_soon"
	Expired      ExpiryState = "expired"
)

// ClassifyExpiry flags assignments whose end date has passed or falls inside
// the warning window (0 through window days remaining, inclusive). The two
// states are mutually exclusive and do not affect IsActive: an expired
// assignment keeps counting until it is explicitly replaced.
func ClassifyExpiry(rec Record, now time.Time, window time.Duration) ExpiryState {
	if rec.EndAt == nil {
		return ExpiryNone
	}
	if rec.EndAt.Before(now) {
		return Expired
	}
	if !rec.EndAt.After(now.Add(window)) {
		return ExpiringSoon
	}
	return ExpiryNone
}
