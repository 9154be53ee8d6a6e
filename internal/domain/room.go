package domain

import "time"

type RoomStatus string

const (
	RoomStatusOperational RoomStatus = "operational"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusClosed      RoomStatus = "closed"
)

// RoomType is the priced category a room belongs to. Amenities live in a
// child table.
type RoomType struct {
	ID           int64     `json:"id"`
	TypeKey      string    `json:"typeKey"`
	DisplayName  string    `json:"displayName"`
	MonthlyPrice int64     `json:"monthlyPrice"`
	Description  string    `json:"description"`
	Amenities    []string  `json:"amenities"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

var roomTypeMaxBeds = map[string]int32{
	"2_bed":   2,
	"3_bed":   3,
	"4_5_bed": 5,
	"6_8_bed": 8,
}

// MaxBedsForRoomType returns the bed capacity allowed for a room type key.
// Unknown keys fall back to 10.
func MaxBedsForRoomType(typeKey string) int32 {
	if max, ok := roomTypeMaxBeds[typeKey]; ok {
		return max
	}
	return 10
}

type Room struct {
	ID         int64      `json:"id"`
	RoomNumber string     `json:"roomNumber"`
	RoomTypeID int64      `json:"roomTypeID"`
	Floor      int32      `json:"floor"`
	Gender     string     `json:"gender"` // ward restriction, not derived from occupants
	BedCount   int32      `json:"bedCount"`
	Status     RoomStatus `json:"status"` // administrative, independent of derived occupancy
	CreatedAt  time.Time  `json:"createdAt"`
	Version    int32      `json:"-"`
}
