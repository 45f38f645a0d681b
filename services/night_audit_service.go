package services

import (
	"fmt"
	"log"
	"time"

	"frontdesk-backend/models"

	"gorm.io/gorm"
)

// NightAuditService posts the nightly room-rent charge for every stayover.
// The run is idempotent: a booking/date pair that already carries a
// room-rent charge is skipped, so re-running the audit is safe.
type NightAuditService struct {
	DB *gorm.DB
}

func NewNightAuditService(db *gorm.DB) *NightAuditService {
	return &NightAuditService{DB: db}
}

type NightAuditSummary struct {
	AuditDate time.Time `json:"audit_date"`
	Scanned   int       `json:"scanned"`
	Posted    int       `json:"posted"`
	Skipped   int       `json:"skipped"`
}

// Run posts one room-rent charge dated today for every checked-in booking
// whose check-in date precedes today. Per-row idempotency only; there is no
// batch transaction, a failure surfaces and the next run picks up the rest.
func (s *NightAuditService) Run(today time.Time) (*NightAuditSummary, error) {
	day := normalizeDay(today)
	summary := &NightAuditSummary{AuditDate: day}

	var bookings []models.Booking
	if err := s.DB.
		Where("status = ? AND check_in_date < ?", models.BookingStatusCheckedIn, day).
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to scan stayovers: %w", err)
	}
	summary.Scanned = len(bookings)

	for _, booking := range bookings {
		var n int64
		if err := s.DB.Model(&models.FolioCharge{}).
			Where("booking_id = ? AND charge_type = ? AND charge_date = ?",
				booking.ID, models.ChargeTypeRoomRent, day).
			Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to check existing charge for booking %d: %w", booking.ID, err)
		}
		if n > 0 {
			summary.Skipped++
			continue
		}

		var room models.Room
		if err := s.DB.First(&room, booking.RoomID).Error; err != nil {
			return nil, fmt.Errorf("failed to load room %d for booking %d: %w", booking.RoomID, booking.ID, err)
		}

		charge := models.FolioCharge{
			BookingID:   booking.ID,
			ChargeDate:  day,
			ChargeType:  models.ChargeTypeRoomRent,
			Description: fmt.Sprintf("Room rent %s - room %s", day.Format("2006-01-02"), room.RoomNumber),
			Amount:      room.Rate,
		}
		if err := s.DB.Create(&charge).Error; err != nil {
			return nil, fmt.Errorf("failed to post room rent for booking %d: %w", booking.ID, err)
		}
		summary.Posted++
	}

	log.Printf("night audit %s: scanned %d, posted %d, skipped %d",
		day.Format("2006-01-02"), summary.Scanned, summary.Posted, summary.Skipped)
	return summary, nil
}
