package models

import (
	"time"

	"gorm.io/gorm"
)

// Agency is a partner travel agency trips are booked through.
// Visible to MANAGER and above only.
type Agency struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name          string         `gorm:"uniqueIndex:udx_agencies_name,where:deleted_at is null;size:255;not null" json:"name"`
	ContactPerson string         `gorm:"size:255" json:"contact_person"`
	Phone         string         `gorm:"size:32" json:"phone"`
	Email         string         `gorm:"size:255" json:"email,omitempty"`
	Address       string         `gorm:"size:255" json:"address,omitempty"`
	City          string         `gorm:"size:128" json:"city,omitempty"`
}

// Hotel is a pickup/dropoff partner hotel. Visible to MANAGER and above only.
type Hotel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Name      string         `gorm:"uniqueIndex:udx_hotels_name,where:deleted_at is null;size:255;not null" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	City      string         `gorm:"size:128" json:"city"`
	Phone     string         `gorm:"size:32" json:"phone"`
	Email     string         `gorm:"size:255" json:"email,omitempty"`
}
