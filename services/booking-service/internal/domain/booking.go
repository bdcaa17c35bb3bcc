package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}

// Booking dates are whole days, stored at midnight UTC.
type Booking struct {
	ID              string        `gorm:"primaryKey" json:"id"`
	CustomerID      string        `gorm:"index" json:"customer_id"`
	RoomID          string        `gorm:"index" json:"room_id"`
	CheckInDate     time.Time     `gorm:"index" json:"check_in_date"`
	CheckOutDate    time.Time     `gorm:"index" json:"check_out_date"`
	NumberOfGuests  int32         `json:"number_of_guests"`
	TotalPrice      float64       `json:"total_price"`
	Status          BookingStatus `gorm:"index" json:"status"`
	SpecialRequests string        `json:"special_requests,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}
