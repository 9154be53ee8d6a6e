package occupancy

import (
	"testing"

	"github.com/goldencare-dev/carehome/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeRep(id int64, residentID int64) Representative {
	return Representative{
		Record: Record{ID: id, ResidentID: &residentID, Status: domain.AssignmentStatusActive},
		Active: true,
	}
}

func TestAggregateRoom_SimpleActiveBed(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 2}
	beds := []*domain.Bed{
		{ID: 10, BedNumber: "A", Status: domain.BedStatusOccupied},
		{ID: 11, BedNumber: "B", Status: domain.BedStatusAvailable},
	}

	yesterday := testNow.AddDate(0, 0, -1)
	records := []Record{
		{ID: 1, TargetID: 10, ResidentID: int64Ptr(100), Status: domain.AssignmentStatusDone, EndAt: &yesterday, CreatedAt: testNow.AddDate(0, -3, 0)},
		{ID: 2, TargetID: 10, ResidentID: int64Ptr(101), Status: domain.AssignmentStatusActive, CreatedAt: testNow.AddDate(0, -1, 0)},
	}

	occ := AggregateRoom(room, beds, Reconcile(records, testNow))

	assert.Equal(t, int32(1), occ.OccupiedCount)
	assert.Equal(t, int32(1), occ.AvailableCount)
	assert.Equal(t, RoomAvailable, occ.Status)

	require.Len(t, occ.Beds, 2)
	assert.True(t, occ.Beds[0].Occupied)
	assert.Equal(t, int64(101), *occ.Beds[0].ResidentID)
	assert.Equal(t, int64(2), *occ.Beds[0].AssignmentID)
	assert.False(t, occ.Beds[1].Occupied)
}

func TestAggregateRoom_FullRoom(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 2}
	beds := []*domain.Bed{
		{ID: 10, BedNumber: "A"},
		{ID: 11, BedNumber: "B"},
	}
	reps := map[int64]Representative{
		10: activeRep(1, 100),
		11: activeRep(2, 101),
	}

	occ := AggregateRoom(room, beds, reps)

	assert.Equal(t, RoomOccupied, occ.Status)
	assert.Equal(t, int32(2), occ.OccupiedCount)
	assert.Equal(t, int32(0), occ.AvailableCount)
}

func TestAggregateRoom_LatestOnlyRepresentativeDoesNotOccupy(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 1}
	beds := []*domain.Bed{{ID: 10, BedNumber: "A"}}
	reps := map[int64]Representative{
		10: {Record: Record{ID: 1, ResidentID: int64Ptr(100), Status: domain.AssignmentStatusDone}},
	}

	occ := AggregateRoom(room, beds, reps)

	assert.Equal(t, int32(0), occ.OccupiedCount)
	assert.Nil(t, occ.Beds[0].ResidentID)
}

func TestAggregateRoom_AdministrativelyOccupiedWithoutAssignment(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 1}
	beds := []*domain.Bed{{ID: 10, BedNumber: "A", Status: domain.BedStatusOccupied}}

	occ := AggregateRoom(room, beds, map[int64]Representative{})

	assert.False(t, occ.Beds[0].Occupied)
	assert.True(t, occ.Beds[0].ResidentUnknown)
	assert.Nil(t, occ.Beds[0].ResidentID)
}

// occupied + available must equal the declared capacity for any mix of
// representatives
func TestAggregateRoom_CountsConserved(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 4}
	beds := []*domain.Bed{
		{ID: 10, BedNumber: "A"},
		{ID: 11, BedNumber: "B"},
		{ID: 12, BedNumber: "C"},
		{ID: 13, BedNumber: "D"},
	}

	for occupied := 0; occupied <= len(beds); occupied++ {
		reps := make(map[int64]Representative)
		for i := 0; i < occupied; i++ {
			reps[beds[i].ID] = activeRep(int64(i+1), int64(100+i))
		}

		occ := AggregateRoom(room, beds, reps)
		assert.Equal(t, occ.TotalBeds, occ.OccupiedCount+occ.AvailableCount)
	}
}

// an admin can shrink the declared capacity after the beds were filled; the
// counts must still add up even then, with availability going negative
func TestAggregateRoom_OverCapacityCountsConserved(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 2}
	beds := []*domain.Bed{
		{ID: 10, BedNumber: "A"},
		{ID: 11, BedNumber: "B"},
		{ID: 12, BedNumber: "C"},
	}
	reps := map[int64]Representative{
		10: activeRep(1, 100),
		11: activeRep(2, 101),
		12: activeRep(3, 102),
	}

	occ := AggregateRoom(room, beds, reps)

	assert.Equal(t, int32(3), occ.OccupiedCount)
	assert.Equal(t, int32(-1), occ.AvailableCount)
	assert.Equal(t, occ.TotalBeds, occ.OccupiedCount+occ.AvailableCount)
	assert.Equal(t, RoomOccupied, occ.Status)
}

func TestAggregateRoom_NoBeds(t *testing.T) {
	room := &domain.Room{ID: 1, BedCount: 2}

	occ := AggregateRoom(room, nil, nil)

	assert.Equal(t, int32(0), occ.OccupiedCount)
	assert.Equal(t, int32(2), occ.AvailableCount)
	assert.Equal(t, RoomAvailable, occ.Status)
	assert.Empty(t, occ.Beds)
}
