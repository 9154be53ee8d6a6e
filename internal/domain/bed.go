package domain

import "time"

type BedStatus string

const (
	BedStatusAvailable   BedStatus = "available"
	BedStatusOccupied    BedStatus = "occupied"
	BedStatusMaintenance BedStatus = "maintenance"
)

// Bed carries an administrative status set by staff. The occupancy package
// derives the actual occupied/available state from assignments, and the two
// are allowed to disagree.
type Bed struct {
	ID        int64     `json:"id"`
	BedNumber string    `json:"bedNumber"`
	RoomID    int64     `json:"roomID"`
	BedType   string    `json:"bedType"`
	Status    BedStatus `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
