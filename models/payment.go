package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment modes.
const (
	PaymentModeCash         = "cash"
	PaymentModeCard         = "card"
	PaymentModeUPI          = "upi"
	PaymentModeBankTransfer = "bank_transfer"
)

// Payment is a mode-tagged credit against a booking. Append-only: payments
// are never rolled back, even when a later checkout step fails.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`

	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Mode       string          `gorm:"size:32" json:"mode"`
	ReceivedAt time.Time       `gorm:"column:received_at" json:"received_at"`
	Note       string          `gorm:"size:255" json:"note,omitempty"`
}

// ValidPaymentMode reports whether m is a recognised payment mode.
func ValidPaymentMode(m string) bool {
	switch m {
	case PaymentModeCash, PaymentModeCard, PaymentModeUPI, PaymentModeBankTransfer:
		return true
	}
	return false
}
