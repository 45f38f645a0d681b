package services

import (
	"errors"
	"fmt"
	"strings"

	"frontdesk-backend/models"

	"gorm.io/gorm"
)

// GuestService maintains the KYC registry. Guests are keyed by mobile
// number: the first encounter creates the row, later stays reuse it.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// GuestInput is the identity capture payload shared by reservations and
// check-in.
type GuestInput struct {
	FullName       string `json:"fullName" binding:"required"`
	Mobile         string `json:"mobile" binding:"required"`
	Email          string `json:"email"`
	Nationality    string `json:"nationality"`
	CurrentAddress string `json:"currentAddress"`
	IDType         string `json:"idType"`
	IDNumber       string `json:"idNumber"`
}

// FindOrCreate looks a guest up by mobile inside the given handle (which
// may be a transaction) and creates one on first encounter. Identity fields
// supplied on a later visit fill in blanks but never blank out data.
func (s *GuestService) FindOrCreate(db *gorm.DB, in GuestInput) (*models.Guest, error) {
	mobile := strings.TrimSpace(in.Mobile)
	if mobile == "" {
		return nil, errors.New("validation: guest mobile is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, errors.New("validation: guest name is required")
	}

	var guest models.Guest
	err := db.Where("mobile = ?", mobile).First(&guest).Error
	if err == nil {
		updates := map[string]interface{}{}
		if guest.Email == "" && in.Email != "" {
			updates["email"] = in.Email
		}
		if guest.Nationality == "" && in.Nationality != "" {
			updates["nationality"] = in.Nationality
		}
		if guest.CurrentAddress == "" && in.CurrentAddress != "" {
			updates["current_address"] = in.CurrentAddress
		}
		if guest.IDType == "" && in.IDType != "" {
			updates["id_type"] = in.IDType
			updates["id_number"] = in.IDNumber
		}
		if len(updates) > 0 {
			if err := db.Model(&guest).Updates(updates).Error; err != nil {
				return nil, fmt.Errorf("failed to update guest: %w", err)
			}
		}
		return &guest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up guest: %w", err)
	}

	guest = models.Guest{
		FullName:       strings.TrimSpace(in.FullName),
		Mobile:         mobile,
		Email:          strings.TrimSpace(in.Email),
		Nationality:    in.Nationality,
		CurrentAddress: in.CurrentAddress,
		IDType:         in.IDType,
		IDNumber:       in.IDNumber,
	}
	if err := db.Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}
	return &guest, nil
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	if err := s.DB.Order("created_at DESC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("guest_not_found")
		}
		return nil, fmt.Errorf("failed to retrieve guest: %w", err)
	}
	return &guest, nil
}

func (s *GuestService) Update(id uint, in GuestInput) (*models.Guest, error) {
	guest, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"full_name":       strings.TrimSpace(in.FullName),
		"mobile":          strings.TrimSpace(in.Mobile),
		"email":           strings.TrimSpace(in.Email),
		"nationality":     in.Nationality,
		"current_address": in.CurrentAddress,
		"id_type":         in.IDType,
		"id_number":       in.IDNumber,
	}
	if err := s.DB.Model(guest).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update guest: %w", err)
	}
	return guest, nil
}

// GuestHistoryEntry is one stay in the exported history.
type GuestHistoryEntry struct {
	Booking   models.Booking            `json:"booking"`
	Charges   []models.FolioCharge      `json:"charges"`
	Payments  []models.Payment          `json:"payments"`
	Documents []models.ArchivedDocument `json:"documents"`
}

type GuestHistory struct {
	Guest models.Guest        `json:"guest"`
	Stays []GuestHistoryEntry `json:"stays"`
}

// History exports the guest's full stay history. A sequential chain of
// queries; any failure surfaces to the caller, nothing is retried.
func (s *GuestService) History(guestID uint) (*GuestHistory, error) {
	guest, err := s.GetByID(guestID)
	if err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := s.DB.
		Preload("Room").
		Where("guest_id = ?", guest.ID).
		Order("check_in_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	history := &GuestHistory{Guest: *guest, Stays: make([]GuestHistoryEntry, 0, len(bookings))}
	for _, booking := range bookings {
		charges, payments, err := loadLedger(s.DB, booking.ID)
		if err != nil {
			return nil, err
		}
		var docs []models.ArchivedDocument
		if err := s.DB.Where("booking_id = ?", booking.ID).Order("created_at").Find(&docs).Error; err != nil {
			return nil, fmt.Errorf("failed to load documents for booking %d: %w", booking.ID, err)
		}
		history.Stays = append(history.Stays, GuestHistoryEntry{
			Booking:   booking,
			Charges:   charges,
			Payments:  payments,
			Documents: docs,
		})
	}
	return history, nil
}
