package models

import (
	"time"

	"gorm.io/gorm"
)

type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string `json:"typeName" gorm:"size:100"`
	Description string `json:"description"`
	MaxGuests   uint   `json:"maxGuests"`

	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
