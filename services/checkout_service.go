package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"frontdesk-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService runs the terminal workflow of a stay:
//
//	freeze folio -> settle payment -> recompute -> archive invoice ->
//	archive GRC -> close booking, mark room dirty
//
// Payments commit immediately and are never rolled back. Archival failures
// stop the workflow before the booking closes, so the operator can retry;
// a retry reuses documents that already archived.
type CheckoutService struct {
	DB   *gorm.DB
	Docs DocumentArchiver
}

func NewCheckoutService(db *gorm.DB, docs DocumentArchiver) *CheckoutService {
	return &CheckoutService{DB: db, Docs: docs}
}

type CheckoutResult struct {
	Booking *models.Booking          `json:"booking"`
	Totals  FolioTotals              `json:"totals"`
	Invoice *models.ArchivedDocument `json:"invoice"`
	GRC     *models.ArchivedDocument `json:"grc"`
}

// Checkout settles and closes a booking. settle may be zero when the folio
// is already paid up; a negative amount is rejected.
func (s *CheckoutService) Checkout(bookingID uint, settle decimal.Decimal, mode string, operatorID uint) (*CheckoutResult, error) {
	if settle.IsNegative() {
		return nil, errors.New("validation: settlement amount must not be negative")
	}
	if settle.IsPositive() && !models.ValidPaymentMode(mode) {
		return nil, fmt.Errorf("validation: unknown payment mode %q", mode)
	}

	var booking models.Booking
	if err := s.DB.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.Status != models.BookingStatusCheckedIn {
		return nil, errors.New("not_checked_in")
	}

	var guest models.Guest
	if err := s.DB.First(&guest, booking.GuestID).Error; err != nil {
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}
	var room models.Room
	if err := s.DB.First(&room, booking.RoomID).Error; err != nil {
		return nil, fmt.Errorf("failed to load room: %w", err)
	}

	cgstRate, sgstRate, err := loadTaxRates(s.DB)
	if err != nil {
		return nil, err
	}

	var operator models.Operator
	if err := s.DB.First(&operator, operatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("operator_not_found")
		}
		return nil, fmt.Errorf("failed to load operator: %w", err)
	}

	// Freeze the ledger as of checkout time.
	charges, payments, err := loadLedger(s.DB, booking.ID)
	if err != nil {
		return nil, err
	}
	due := ComputeTotals(charges, payments, cgstRate, sgstRate)
	log.Printf("checkout booking %d: balance due %s, settling %s", booking.ID, due.Balance.StringFixed(2), settle.StringFixed(2))

	// Record the settlement. Committed on its own: a later archival failure
	// must never lose a payment that was taken.
	if settle.IsPositive() {
		payment := models.Payment{
			BookingID:  booking.ID,
			Amount:     settle,
			Mode:       mode,
			ReceivedAt: time.Now(),
			Note:       "checkout settlement",
		}
		if err := s.DB.Create(&payment).Error; err != nil {
			return nil, fmt.Errorf("failed to record settlement: %w", err)
		}
	}

	// Recompute over the full sets, settlement included.
	charges, payments, err = loadLedger(s.DB, booking.ID)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(charges, payments, cgstRate, sgstRate)

	invoice, err := s.Docs.ArchiveInvoice(&booking, &guest, &room, charges, payments, totals)
	if err != nil {
		return nil, fmt.Errorf("invoice_archive_failed: %w", err)
	}
	grc, err := s.Docs.ArchiveGRC(&booking, &guest, &room)
	if err != nil {
		return nil, fmt.Errorf("grc_archive_failed: %w", err)
	}

	// Close the booking and dirty the room. Both updates are idempotent
	// no-ops on the correct final state, so a failed attempt is retryable.
	now := time.Now()
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingStatusCheckedIn).
			Updates(map[string]interface{}{
				"status":          models.BookingStatusCheckedOut,
				"actual_checkout": now,
				"checked_out_by":  operator.ID,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Room{}).
			Where("id = ?", booking.RoomID).
			Updates(map[string]interface{}{"status": models.RoomStatusVacantDirty}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		// Documents persisted; closure is retryable.
		return nil, fmt.Errorf("checkout_close_failed: %w", err)
	}

	booking.Status = models.BookingStatusCheckedOut
	booking.ActualCheckout = &now
	booking.CheckedOutBy = &operator.ID

	return &CheckoutResult{
		Booking: &booking,
		Totals:  totals,
		Invoice: invoice,
		GRC:     grc,
	}, nil
}
