package occupancy

import (
	"math/rand"
	"testing"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcile_ActiveWinsOverDone(t *testing.T) {
	yesterday := testNow.AddDate(0, 0, -1)

	records := []Record{
		{ID: 1, TargetID: 10, ResidentID: int64Ptr(100), Status: domain.AssignmentStatusDone, EndAt: timePtr(yesterday), CreatedAt: testNow.AddDate(0, -2, 0)},
		{ID: 2, TargetID: 10, ResidentID: int64Ptr(101), Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -1, 0)},
	}

	reps := Reconcile(records, testNow)

	require.Contains(t, reps, int64(10))
	assert.True(t, reps[10].Active)
	assert.Equal(t, int64(2), reps[10].Record.ID)
}

func TestReconcile_LatestPickWhenNothingActive(t *testing.T) {
	records := []Record{
		{ID: 1, TargetID: 10, Status: domain.AssignmentStatusDone, StartAt: timePtr(testNow.AddDate(-1, 0, 0)), EndAt: timePtr(testNow.AddDate(0, -6, 0)), CreatedAt: testNow.AddDate(-1, 0, 0)},
		{ID: 2, TargetID: 10, Status: domain.AssignmentStatusDone, StartAt: timePtr(testNow.AddDate(0, -5, 0)), EndAt: timePtr(testNow.AddDate(0, -1, 0)), CreatedAt: testNow.AddDate(0, -5, 0)},
	}

	reps := Reconcile(records, testNow)

	require.Contains(t, reps, int64(10))
	assert.False(t, reps[10].Active, "latest pick must not imply occupancy")
	assert.Equal(t, int64(2), reps[10].Record.ID)
}

func TestReconcile_OverlappingActivesResolvedByNewestCreated(t *testing.T) {
	records := []Record{
		{ID: 1, TargetID: 10, Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -3, 0)},
		{ID: 2, TargetID: 10, Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -1, 0)},
		{ID: 3, TargetID: 10, Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -2, 0)},
	}

	reps := Reconcile(records, testNow)

	assert.Equal(t, int64(2), reps[10].Record.ID)
}

func TestReconcile_GroupsByTarget(t *testing.T) {
	records := []Record{
		{ID: 1, TargetID: 10, Status: domain.AssignmentStatusActive, CreatedAt: testNow},
		{ID: 2, TargetID: 20, Status: domain.AssignmentStatusCancelled, CreatedAt: testNow},
		{ID: 3, TargetID: 30, Status: domain.AssignmentStatusDone, CreatedAt: testNow},
	}

	reps := Reconcile(records, testNow)

	require.Len(t, reps, 3)
	assert.True(t, reps[10].Active)
	assert.False(t, reps[20].Active)
	assert.True(t, reps[30].Active) // done with nil end date is still in effect
}

// the representative per target must not depend on input order
func TestReconcile_DeterministicUnderPermutation(t *testing.T) {
	records := []Record{
		{ID: 1, TargetID: 10, Status: domain.AssignmentStatusDone, EndAt: timePtr(testNow.AddDate(0, 0, -10)), CreatedAt: testNow.AddDate(0, -6, 0)},
		{ID: 2, TargetID: 10, Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -5, 0)},
		{ID: 3, TargetID: 10, Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -5, 0)},
		{ID: 4, TargetID: 20, Status: domain.AssignmentStatusDone, EndAt: timePtr(testNow.AddDate(0, 0, -2)), StartAt: timePtr(testNow.AddDate(0, -2, 0)), CreatedAt: testNow.AddDate(0, -2, 0)},
		{ID: 5, TargetID: 20, Status: domain.AssignmentStatusDone, EndAt: timePtr(testNow.AddDate(0, 0, -30)), StartAt: timePtr(testNow.AddDate(0, -4, 0)), CreatedAt: testNow.AddDate(0, -4, 0)},
	}

	want := Reconcile(records, testNow)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := make([]Record, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		assert.Equal(t, want, Reconcile(shuffled, testNow))
	}
}

func TestReconcile_EmptyInput(t *testing.T) {
	assert.Empty(t, Reconcile(nil, testNow))
}

func TestFromBedAssignments(t *testing.T) {
	assigned := testNow.AddDate(0, -1, 0)

	records := FromBedAssignments([]*domain.BedAssignment{
		{ID: 1, BedID: 5, ResidentID: int64Ptr(9), Status: domain.AssignmentStatusActive, AssignedAt: &assigned, CreatedAt: assigned},
	})

	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].TargetID)
	assert.Equal(t, int64(9), *records[0].ResidentID)
	assert.Equal(t, assigned, *records[0].StartAt)
	assert.Nil(t, records[0].EndAt)
}

func TestFromCarePlanAssignments(t *testing.T) {
	end := testNow.AddDate(0, 1, 0)

	records := FromCarePlanAssignments([]*domain.CarePlanAssignment{
		{ID: 1, CarePlanID: 7, ResidentID: 9, Status: domain.AssignmentStatusDone, EndAt: &end, CreatedAt: testNow},
	})

	require.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].TargetID)
	assert.Equal(t, int64(9), *records[0].ResidentID)
	assert.Equal(t, end, *records[0].EndAt)
}
