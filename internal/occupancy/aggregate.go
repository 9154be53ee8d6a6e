package occupancy

import (
	"github.com/goldencare-dev/carehome/backend/internal/domain"
)

type RoomOccupancyStatus string

const (
	RoomOccupied  RoomOccupancyStatus = "occupied"
	RoomAvailable RoomOccupancyStatus = "available"
)

// BedOccupancy is the derived state of one bed. ResidentID is only filled
// from an active representative. ResidentUnknown flags the case where the
// administrative bed status says occupied but no active assignment backs it
// up; callers render that as "occupied, resident unknown" instead of a blank.
type BedOccupancy struct {
	BedID           int64  `json:"bedID"`
	BedNumber       string `json:"bedNumber"`
	Occupied        bool   `json:"occupied"`
	ResidentID      *int64 `json:"residentID"`
	ResidentUnknown bool   `json:"residentUnknown"`
	AssignmentID    *int64 `json:"assignmentID"`
}

type RoomOccupancy struct {
	RoomID         int64               `json:"roomID"`
	OccupiedCount  int32               `json:"occupiedCount"`
	AvailableCount int32               `json:"availableCount"`
	TotalBeds      int32               `json:"totalBeds"`
	Status         RoomOccupancyStatus `json:"status"`
	Beds           []BedOccupancy      `json:"beds"`
}

// AggregateRoom derives a room's occupancy from the reconciled
// representatives of its beds. A bed counts as occupied only when its
// representative is the active pick; AvailableCount is derived from the
// declared capacity so occupied+available always equals TotalBeds.
func AggregateRoom(room *domain.Room, beds []*domain.Bed, reps map[int64]Representative) RoomOccupancy {
	occ := RoomOccupancy{
		RoomID:    room.ID,
		TotalBeds: room.BedCount,
		Beds:      make([]BedOccupancy, 0, len(beds)),
	}

	for _, bed := range beds {
		bo := BedOccupancy{
			BedID:     bed.ID,
			BedNumber: bed.BedNumber,
		}

		if rep, ok := reps[bed.ID]; ok && rep.Active {
			bo.Occupied = true
			bo.ResidentID = rep.Record.ResidentID
			assignmentID := rep.Record.ID
			bo.AssignmentID = &assignmentID
			occ.OccupiedCount++
		}

		if !bo.Occupied && bed.Status == domain.BedStatusOccupied {
			// administrative status disagrees with the derivation
			bo.ResidentUnknown = true
		}

		occ.Beds = append(occ.Beds, bo)
	}

	// goes negative when more beds are actively occupied than the declared
	// capacity allows; the counts must still add up to TotalBeds
	occ.AvailableCount = occ.TotalBeds - occ.OccupiedCount

	if occ.OccupiedCount >= room.BedCount {
		occ.Status = RoomOccupied
	} else {
		occ.Status = RoomAvailable
	}

	return occ
}
