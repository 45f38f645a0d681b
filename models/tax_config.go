package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxConfig holds the flat CGST/SGST percentage rates applied to folio
// subtotals. A single row is kept current; archived documents freeze the
// rates in effect at checkout so later edits never rewrite history.
type TaxConfig struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CGSTPercent decimal.Decimal `gorm:"column:cgst_percent;type:decimal(5,2);not null" json:"cgst_percent"`
	SGSTPercent decimal.Decimal `gorm:"column:sgst_percent;type:decimal(5,2);not null" json:"sgst_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
