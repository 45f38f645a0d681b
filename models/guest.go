package models

import (
	"time"
)

// Guest is the KYC record for a person who has stayed or reserved.
// Guests are looked up by mobile number and reused across stays.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FullName string `json:"fullName" gorm:"size:255"`
	Mobile   string `json:"mobile" gorm:"size:20;uniqueIndex"`
	Email    string `json:"email" gorm:"size:150"`

	Nationality    string `json:"nationality" gorm:"size:100"`
	CurrentAddress string `json:"currentAddress" gorm:"type:text"`

	IDType   string `json:"idType" gorm:"size:50"`
	IDNumber string `json:"idNumber" gorm:"size:100"`
}
