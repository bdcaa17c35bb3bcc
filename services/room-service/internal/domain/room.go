package domain

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomReserved    RoomStatus = "RESERVED"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomReserved, RoomOccupied, RoomMaintenance:
		return true
	}
	return false
}

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
	RoomDeluxe RoomType = "DELUXE"
)

type Room struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	RoomNumber    string     `gorm:"uniqueIndex" json:"room_number"`
	RoomType      RoomType   `gorm:"index" json:"room_type"`
	PricePerNight float64    `json:"price_per_night"`
	Status        RoomStatus `gorm:"index" json:"status"`
	Floor         int32      `json:"floor"`
	Capacity      int32      `json:"capacity"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
