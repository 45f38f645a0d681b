package services

import (
	"errors"
	"fmt"
	"time"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService creates and manages stays. Check-in is the only place a
// room flips to occupied; the room row is locked for the duration of the
// transaction so two terminals cannot check into the same room.
type BookingService struct {
	DB     *gorm.DB
	Guests *GuestService
}

func NewBookingService(db *gorm.DB, guests *GuestService) *BookingService {
	return &BookingService{DB: db, Guests: guests}
}

type CheckInInput struct {
	Guest            GuestInput
	RoomID           uint
	ExpectedCheckout time.Time
	Adults           int
	Children         int

	// Optional advance collected at the desk.
	Advance     decimal.Decimal
	AdvanceMode string
}

// CheckIn creates a walk-in stay: guest find-or-create, room must be
// vacant_clean, first night's room rent posted, optional advance recorded.
func (s *BookingService) CheckIn(in CheckInInput) (*models.Booking, error) {
	return s.checkIn(in, nil)
}

// CheckInReservation converts a confirmed reservation into a stay in the
// reserved room, carrying its dates and party size as defaults.
func (s *BookingService) CheckInReservation(reservationID uint, guest GuestInput, advance decimal.Decimal, advanceMode string) (*models.Booking, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation_not_found")
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	if reservation.Status != models.ReservationStatusConfirmed {
		return nil, errors.New("reservation_not_confirmed")
	}

	in := CheckInInput{
		Guest:            guest,
		RoomID:           reservation.RoomID,
		ExpectedCheckout: reservation.DepartureDate,
		Adults:           reservation.Adults,
		Children:         reservation.Children,
		Advance:          advance,
		AdvanceMode:      advanceMode,
	}
	return s.checkIn(in, &reservation)
}

func (s *BookingService) checkIn(in CheckInInput, reservation *models.Reservation) (*models.Booking, error) {
	if in.Advance.IsNegative() {
		return nil, errors.New("validation: advance must not be negative")
	}
	if in.Advance.IsPositive() && !models.ValidPaymentMode(in.AdvanceMode) {
		return nil, fmt.Errorf("validation: unknown payment mode %q", in.AdvanceMode)
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	today := normalizeDay(time.Now())
	expected := normalizeDay(in.ExpectedCheckout)
	if !expected.After(today) {
		return nil, errors.New("validation: expected checkout must be after today")
	}

	var bookingID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		guest, err := s.Guests.FindOrCreate(tx, in.Guest)
		if err != nil {
			return err
		}

		// Lock the room row: the vacancy check and the status flip must be
		// atomic across racing terminals.
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("room_not_found")
			}
			return fmt.Errorf("failed to load room: %w", err)
		}
		if room.Status != models.RoomStatusVacantClean {
			return errors.New("room_not_available")
		}

		booking := models.Booking{
			ReferenceCode:    utils.GenerateReferenceCode("BK"),
			Status:           models.BookingStatusCheckedIn,
			GuestID:          guest.ID,
			RoomID:           room.ID,
			CheckInDate:      today,
			ExpectedCheckout: expected,
			Adults:           in.Adults,
			Children:         in.Children,
		}
		if reservation != nil {
			booking.ReservationID = &reservation.ID
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		bookingID = booking.ID

		if err := tx.Model(&models.Room{}).
			Where("id = ?", room.ID).
			Updates(map[string]interface{}{"status": models.RoomStatusOccupied}).Error; err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		// First night posts at check-in; the night audit covers the rest.
		// Same-date guard keeps a re-run from double-charging.
		var n int64
		if err := tx.Model(&models.FolioCharge{}).
			Where("booking_id = ? AND charge_type = ? AND charge_date = ?",
				booking.ID, models.ChargeTypeRoomRent, today).
			Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check existing charge: %w", err)
		}
		if n == 0 {
			charge := models.FolioCharge{
				BookingID:   booking.ID,
				ChargeDate:  today,
				ChargeType:  models.ChargeTypeRoomRent,
				Description: fmt.Sprintf("Room rent %s - room %s", today.Format("2006-01-02"), room.RoomNumber),
				Amount:      room.Rate,
			}
			if err := tx.Create(&charge).Error; err != nil {
				return fmt.Errorf("failed to post first night: %w", err)
			}
		}

		if in.Advance.IsPositive() {
			payment := models.Payment{
				BookingID:  booking.ID,
				Amount:     in.Advance,
				Mode:       in.AdvanceMode,
				ReceivedAt: time.Now(),
				Note:       "advance at check-in",
			}
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("failed to record advance: %w", err)
			}
		}

		if reservation != nil {
			if err := tx.Model(reservation).
				Updates(map[string]interface{}{"status": models.ReservationStatusCheckedIn}).Error; err != nil {
				return fmt.Errorf("failed to update reservation: %w", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var result models.Booking
	if err := s.DB.
		Preload("Guest").
		Preload("Room").
		Preload("Charges").
		Preload("Payments").
		First(&result, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking: %w", err)
	}
	return &result, nil
}

// ExtendStay pushes the expected checkout out. The night audit posts the
// added nights as they occur; nothing is charged up front.
func (s *BookingService) ExtendStay(bookingID uint, newCheckout time.Time) (*models.Booking, error) {
	booking, err := findOpenBooking(s.DB, bookingID)
	if err != nil {
		return nil, err
	}

	extended := normalizeDay(newCheckout)
	if !extended.After(normalizeDay(booking.ExpectedCheckout)) {
		return nil, errors.New("validation: new checkout must extend the current stay")
	}

	if err := s.DB.Model(booking).
		Updates(map[string]interface{}{"expected_checkout": extended}).Error; err != nil {
		return nil, fmt.Errorf("failed to extend stay: %w", err)
	}
	booking.ExpectedCheckout = extended
	return booking, nil
}

func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Guest").
		Preload("Room").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

func (s *BookingService) GetDetails(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.
		Preload("Guest").
		Preload("Room").
		Preload("Charges").
		Preload("Payments").
		First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("booking_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &booking, nil
}
