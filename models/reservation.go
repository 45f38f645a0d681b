package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCheckedIn = "checked_in"
)

// Reservation is a future intent to stay. It becomes checked_in when a
// Booking is created from it.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Status        string `gorm:"column:status;size:32;index" json:"status"`

	GuestID uint `gorm:"index;column:guest_id" json:"guest_id"`
	RoomID  uint `gorm:"index;column:room_id" json:"room_id"`

	ArrivalDate   time.Time `gorm:"column:arrival_date" json:"arrival_date"`
	DepartureDate time.Time `gorm:"column:departure_date" json:"departure_date"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
