package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Folio charge types.
const (
	ChargeTypeRoomRent      = "room_rent"
	ChargeTypeExtraBed      = "extra_bed"
	ChargeTypeEarlyCheckin  = "early_checkin"
	ChargeTypeLateCheckout  = "late_checkout"
	ChargeTypeMiscellaneous = "miscellaneous"
)

// FolioCharge is a dated line item on a booking's folio. Rows are
// append-only for the life of the stay; there is no update or delete path.
type FolioCharge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`

	ChargeDate  time.Time       `gorm:"column:charge_date;type:date;index" json:"charge_date"`
	ChargeType  string          `gorm:"column:charge_type;size:32;index" json:"charge_type"`
	Description string          `gorm:"size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
}

// ValidChargeType reports whether t is one of the folio charge types.
func ValidChargeType(t string) bool {
	switch t {
	case ChargeTypeRoomRent, ChargeTypeExtraBed, ChargeTypeEarlyCheckin,
		ChargeTypeLateCheckout, ChargeTypeMiscellaneous:
		return true
	}
	return false
}
