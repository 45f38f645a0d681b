package models

import (
	"time"

	"gorm.io/gorm"
)

// Operator is a front-desk staff identity recorded against checkouts.
// Authentication is handled outside this service; the password hash exists
// only so the seeded default account is usable by that collaborator.
type Operator struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	FullName  string         `gorm:"size:255" json:"full_name"`
	Username  string         `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string         `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
