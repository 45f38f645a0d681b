package services

import (
	"errors"
	"fmt"
	"time"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"

	"gorm.io/gorm"
)

type ReservationService struct {
	DB     *gorm.DB
	Guests *GuestService
}

func NewReservationService(db *gorm.DB, guests *GuestService) *ReservationService {
	return &ReservationService{DB: db, Guests: guests}
}

type CreateReservationInput struct {
	Guest         GuestInput
	RoomID        uint
	ArrivalDate   time.Time
	DepartureDate time.Time
	Adults        int
	Children      int
	Notes         string
}

// Create records a confirmed future stay. The room must exist but is not
// blocked yet; availability is enforced at check-in time.
func (s *ReservationService) Create(in CreateReservationInput) (*models.Reservation, error) {
	if !in.DepartureDate.After(in.ArrivalDate) {
		return nil, errors.New("validation: departure must be after arrival")
	}
	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	var room models.Room
	if err := s.DB.First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, fmt.Errorf("db error checking room %d: %w", in.RoomID, err)
	}

	var reservation models.Reservation
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		guest, err := s.Guests.FindOrCreate(tx, in.Guest)
		if err != nil {
			return err
		}
		reservation = models.Reservation{
			ReferenceCode: utils.GenerateReferenceCode("RSV"),
			Status:        models.ReservationStatusConfirmed,
			GuestID:       guest.ID,
			RoomID:        room.ID,
			ArrivalDate:   normalizeDay(in.ArrivalDate),
			DepartureDate: normalizeDay(in.DepartureDate),
			Adults:        in.Adults,
			Children:      in.Children,
			Notes:         in.Notes,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Guest").Preload("Room").First(&reservation, reservation.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}
	return &reservation, nil
}

// Cancel flips a confirmed reservation to cancelled. Checked-in or already
// cancelled reservations are rejected.
func (s *ReservationService) Cancel(id uint) error {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("reservation_not_found")
		}
		return fmt.Errorf("failed to load reservation: %w", err)
	}
	if reservation.Status != models.ReservationStatusConfirmed {
		return errors.New("reservation_not_confirmed")
	}
	return s.DB.Model(&reservation).
		Updates(map[string]interface{}{"status": models.ReservationStatusCancelled}).Error
}

func (s *ReservationService) GetAll() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.
		Preload("Guest").
		Preload("Room").
		Order("arrival_date").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Guest").Preload("Room").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("reservation_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	return &reservation, nil
}
