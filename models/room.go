package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Room status values. "occupied" is only ever set by check-in/checkout,
// never by the housekeeping status endpoint.
const (
	RoomStatusVacantClean = "vacant_clean"
	RoomStatusVacantDirty = "vacant_dirty"
	RoomStatusOccupied    = "occupied"
	RoomStatusOutOfOrder  = "out_of_order"
)

type Room struct {
	gorm.Model

	// Nullable so a missing FK from the frontend doesn't insert 0.
	RoomTypeID *uint `json:"roomTypeId,omitempty" gorm:"column:room_type_id"`

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`
	Status     string `json:"status" gorm:"type:varchar(32);index;default:'vacant_clean'"`

	// Nightly rate posted by check-in and the night audit.
	Rate decimal.Decimal `json:"rate" gorm:"type:decimal(10,2);not null;default:0"`

	Description string `json:"description" gorm:"type:text"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}
