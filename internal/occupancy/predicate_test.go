package occupancy

import (
	"testing"
	"time"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }

func int64Ptr(v int64) *int64 { return &v }

func TestIsActive_ActiveStatusOverridesDates(t *testing.T) {
	pastEnd := testNow.AddDate(0, -1, 0)

	tests := []struct {
		name string
		rec  Record
	}{
		{"no dates", Record{Status: domain.AssignmentStatusActive}},
		{"past end date", Record{Status: domain.AssignmentStatusActive, EndAt: timePtr(pastEnd)}},
		{"future start date", Record{Status: domain.AssignmentStatusActive, StartAt: timePtr(testNow.AddDate(0, 1, 0))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsActive(tt.rec, testNow))
		})
	}
}

func TestIsActive_DoneStatusFollowsEndDate(t *testing.T) {
	tests := []struct {
		name   string
		endAt  *time.Time
		active bool
	}{
		{"nil end date means still in effect", nil, true},
		{"future end date", timePtr(testNow.AddDate(0, 0, 10)), true},
		{"past end date", timePtr(testNow.AddDate(0, 0, -1)), false},
		{"end date exactly now", timePtr(testNow), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Status: domain.AssignmentStatusDone, EndAt: tt.endAt}
			assert.Equal(t, tt.active, IsActive(rec, testNow))
		})
	}
}

func TestIsActive_AcceptedApprovedDependOnStart(t *testing.T) {
	for _, status := range []domain.AssignmentStatus{domain.AssignmentStatusAccepted, domain.AssignmentStatusApproved} {
		assert.True(t, IsActive(Record{Status: status}, testNow), "nil start counts as started")
		assert.True(t, IsActive(Record{Status: status, StartAt: timePtr(testNow.AddDate(0, 0, -3))}, testNow))
		assert.False(t, IsActive(Record{Status: status, StartAt: timePtr(testNow.AddDate(0, 0, 3))}, testNow))
	}
}

func TestIsActive_TerminalStatusesNeverActive(t *testing.T) {
	statuses := []domain.AssignmentStatus{
		domain.AssignmentStatusPending,
		domain.AssignmentStatusCompleted,
		domain.AssignmentStatusRejected,
		domain.AssignmentStatusCancelled,
	}

	for _, status := range statuses {
		assert.False(t, IsActive(Record{Status: status}, testNow), string(status))
	}
}

func TestHasNotStarted(t *testing.T) {
	assert.False(t, HasNotStarted(Record{}, testNow))
	assert.False(t, HasNotStarted(Record{StartAt: timePtr(testNow.AddDate(0, 0, -1))}, testNow))
	assert.True(t, HasNotStarted(Record{StartAt: timePtr(testNow.AddDate(0, 0, 1))}, testNow))
}

func TestClassifyExpiry(t *testing.T) {
	window := 7 * 24 * time.Hour

	tests := []struct {
		name  string
		endAt *time.Time
		want  ExpiryState
	}{
		{"no end date", nil, ExpiryNone},
		{"far future", timePtr(testNow.AddDate(0, 2, 0)), ExpiryNone},
		{"five days left", timePtr(testNow.Add(5 * 24 * time.Hour)), ExpiringSoon},
		{"exactly seven days left", timePtr(testNow.Add(window)), ExpiringSoon},
		{"ends right now", timePtr(testNow), ExpiringSoon},
		{"already past", timePtr(testNow.Add(-time.Hour)), Expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Status: domain.AssignmentStatusActive, EndAt: tt.endAt}
			assert.Equal(t, tt.want, ClassifyExpiry(rec, testNow, window))
		})
	}
}

// an assignment can never be both expired and expiring soon
func TestClassifyExpiry_StatesMutuallyExclusive(t *testing.T) {
	window := 7 * 24 * time.Hour

	for days := -30; days <= 30; days++ {
		rec := Record{
			Status: domain.AssignmentStatusActive,
			EndAt:  timePtr(testNow.AddDate(0, 0, days)),
		}

		state := ClassifyExpiry(rec, testNow, window)
		if state == Expired {
			assert.NotEqual(t, ExpiringSoon, state)
		}
		if rec.EndAt.Before(testNow) {
			assert.Equal(t, Expired, state)
		}
	}
}
