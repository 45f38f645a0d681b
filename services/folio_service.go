package services

import (
	"errors"
	"fmt"
	"time"

	"frontdesk-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// FolioTotals is the re-derivable money summary of a booking. It is never
// persisted outside archived document payloads; rounding happens only when
// the numbers are rendered.
type FolioTotals struct {
	CGSTRate decimal.Decimal `json:"cgst_rate"`
	SGSTRate decimal.Decimal `json:"sgst_rate"`

	Subtotal   decimal.Decimal `json:"subtotal"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	Balance    decimal.Decimal `json:"balance"`
}

// ComputeTotals derives the folio summary from the full charge and payment
// sets. Pure decimal arithmetic, no intermediate rounding.
func ComputeTotals(charges []models.FolioCharge, payments []models.Payment, cgstRate, sgstRate decimal.Decimal) FolioTotals {
	subtotal := decimal.Zero
	for _, ch := range charges {
		subtotal = subtotal.Add(ch.Amount)
	}

	cgst := subtotal.Mul(cgstRate).Div(hundred)
	sgst := subtotal.Mul(sgstRate).Div(hundred)
	grand := subtotal.Add(cgst).Add(sgst)

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	return FolioTotals{
		CGSTRate:   cgstRate,
		SGSTRate:   sgstRate,
		Subtotal:   subtotal,
		CGST:       cgst,
		SGST:       sgst,
		GrandTotal: grand,
		TotalPaid:  paid,
		Balance:    grand.Sub(paid),
	}
}

// FolioService appends charges and payments to a booking's ledger and
// recomputes totals on demand.
type FolioService struct {
	DB *gorm.DB
}

func NewFolioService(db *gorm.DB) *FolioService {
	return &FolioService{DB: db}
}

// Folio is what GET /bookings/:id/folio returns.
type Folio struct {
	BookingID uint                 `json:"booking_id"`
	Charges   []models.FolioCharge `json:"charges"`
	Payments  []models.Payment     `json:"payments"`
	Totals    FolioTotals          `json:"totals"`
}

func loadTaxRates(db *gorm.DB) (decimal.Decimal, decimal.Decimal, error) {
	var tax models.TaxConfig
	if err := db.First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, decimal.Zero, errors.New("tax_config_missing")
		}
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to load tax config: %w", err)
	}
	return tax.CGSTPercent, tax.SGSTPercent, nil
}

func findOpenBooking(db *gorm.DB, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.Status != models.BookingStatusCheckedIn {
		return nil, errors.New("booking_not_open")
	}
	return &booking, nil
}

// AddCharge appends a dated charge to an open folio. Room-rent charges are
// posted at most once per booking per calendar date; the guard checks for a
// same-date same-type row before the insert.
func (s *FolioService) AddCharge(bookingID uint, chargeDate time.Time, chargeType, description string, amount decimal.Decimal) (*models.FolioCharge, error) {
	if !models.ValidChargeType(chargeType) {
		return nil, fmt.Errorf("validation: unknown charge type %q", chargeType)
	}
	if amount.IsNegative() {
		return nil, errors.New("validation: amount must not be negative")
	}

	booking, err := findOpenBooking(s.DB, bookingID)
	if err != nil {
		return nil, err
	}

	day := normalizeDay(chargeDate)

	if chargeType == models.ChargeTypeRoomRent {
		var n int64
		if err := s.DB.Model(&models.FolioCharge{}).
			Where("booking_id = ? AND charge_type = ? AND charge_date = ?", booking.ID, chargeType, day).
			Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to check existing charge: %w", err)
		}
		if n > 0 {
			return nil, errors.New("duplicate_charge")
		}
	}

	charge := models.FolioCharge{
		BookingID:   booking.ID,
		ChargeDate:  day,
		ChargeType:  chargeType,
		Description: description,
		Amount:      amount,
	}
	if err := s.DB.Create(&charge).Error; err != nil {
		return nil, fmt.Errorf("failed to create charge: %w", err)
	}
	return &charge, nil
}

// AddPayment appends a payment to an open folio.
func (s *FolioService) AddPayment(bookingID uint, amount decimal.Decimal, mode, note string) (*models.Payment, error) {
	if !amount.IsPositive() {
		return nil, errors.New("validation: amount must be positive")
	}
	if !models.ValidPaymentMode(mode) {
		return nil, fmt.Errorf("validation: unknown payment mode %q", mode)
	}

	booking, err := findOpenBooking(s.DB, bookingID)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		BookingID:  booking.ID,
		Amount:     amount,
		Mode:       mode,
		ReceivedAt: time.Now(),
		Note:       note,
	}
	if err := s.DB.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return &payment, nil
}

// GetFolio returns the full ledger plus recomputed totals. Works for both
// open and checked-out bookings.
func (s *FolioService) GetFolio(bookingID uint) (*Folio, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	charges, payments, err := loadLedger(s.DB, booking.ID)
	if err != nil {
		return nil, err
	}

	cgstRate, sgstRate, err := loadTaxRates(s.DB)
	if err != nil {
		return nil, err
	}

	return &Folio{
		BookingID: booking.ID,
		Charges:   charges,
		Payments:  payments,
		Totals:    ComputeTotals(charges, payments, cgstRate, sgstRate),
	}, nil
}

func loadLedger(db *gorm.DB, bookingID uint) ([]models.FolioCharge, []models.Payment, error) {
	var charges []models.FolioCharge
	if err := db.Where("booking_id = ?", bookingID).Order("charge_date, id").Find(&charges).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load charges: %w", err)
	}
	var payments []models.Payment
	if err := db.Where("booking_id = ?", bookingID).Order("received_at, id").Find(&payments).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return charges, payments, nil
}

// normalizeDay truncates to local midnight. Charge dates are calendar days;
// an audit run after midnight posts for the new day.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
