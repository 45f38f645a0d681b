package services

import (
	"errors"
	"fmt"
	"strings"

	"frontdesk-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// CanTransitionRoomStatus encodes the housekeeping state machine. Occupied
// is owned by check-in/checkout and can never be set or cleared by hand.
func CanTransitionRoomStatus(from, to string) bool {
	if from == to {
		return true
	}
	switch from {
	case models.RoomStatusVacantDirty:
		return to == models.RoomStatusVacantClean || to == models.RoomStatusOutOfOrder
	case models.RoomStatusVacantClean:
		return to == models.RoomStatusVacantDirty || to == models.RoomStatusOutOfOrder
	case models.RoomStatusOutOfOrder:
		return to == models.RoomStatusVacantClean || to == models.RoomStatusVacantDirty
	}
	return false
}

func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return errors.New("validation: room number is required")
	}
	if room.Status == "" {
		room.Status = models.RoomStatusVacantClean
	}
	if room.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.First(&rt, *room.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("validation: room type not found")
			}
			return fmt.Errorf("db error checking room type: %w", err)
		}
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetRoomTypes() ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.Order("type_name").Find(&types).Error
	return types, err
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("RoomType").Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("room_not_found")
		}
		return nil, err
	}
	return &room, nil
}

// Update applies a partial update, keeping the protected fields out of
// reach. Status changes go through UpdateStatus.
func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "status")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	result := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}

// UpdateStatus performs a housekeeping transition under a row lock.
func (s *RoomService) UpdateStatus(id uint, to string) (*models.Room, error) {
	switch to {
	case models.RoomStatusVacantClean, models.RoomStatusVacantDirty, models.RoomStatusOutOfOrder:
	default:
		return nil, fmt.Errorf("validation: invalid target status %q", to)
	}

	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("room_not_found")
			}
			return err
		}
		if !CanTransitionRoomStatus(room.Status, to) {
			return errors.New("invalid_status_transition")
		}
		if room.Status == to {
			return nil
		}
		if err := tx.Model(&room).Updates(map[string]interface{}{"status": to}).Error; err != nil {
			return err
		}
		room.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Delete(id uint) error {
	var n int64
	if err := s.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status = ?", id, models.BookingStatusCheckedIn).
		Count(&n).Error; err != nil {
		return fmt.Errorf("failed to check active bookings: %w", err)
	}
	if n > 0 {
		return errors.New("room_occupied")
	}

	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("room_not_found")
	}
	return nil
}
