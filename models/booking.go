package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
)

// Booking is an active or completed stay. It owns the folio (charges and
// payments) and, after checkout, the archived documents.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	Status        string `gorm:"column:status;size:32;index" json:"status"`

	GuestID       uint  `gorm:"index;column:guest_id" json:"guest_id"`
	RoomID        uint  `gorm:"index;column:room_id" json:"room_id"`
	ReservationID *uint `gorm:"index;column:reservation_id" json:"reservation_id,omitempty"`

	CheckInDate      time.Time  `gorm:"column:check_in_date" json:"check_in_date"`
	ExpectedCheckout time.Time  `gorm:"column:expected_checkout" json:"expected_checkout"`
	ActualCheckout   *time.Time `gorm:"column:actual_checkout" json:"actual_checkout,omitempty"`

	// Operator who performed the checkout.
	CheckedOutBy *uint `gorm:"column:checked_out_by" json:"checked_out_by,omitempty"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`

	Guest    Guest         `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room     Room          `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Charges  []FolioCharge `gorm:"foreignKey:BookingID" json:"charges,omitempty"`
	Payments []Payment     `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
}
