package models

import (
	"time"

	"gorm.io/gorm"
)

type DriverStatus string

const (
	DriverAvailable DriverStatus = "AVAILABLE"
	DriverOnTrip    DriverStatus = "ON_TRIP"
	DriverOffDuty   DriverStatus = "OFF_DUTY"
)

// Driver is the professional profile owned 1:1 by a User.
// The unique index on UserID enforces at most one active driver per user.
type Driver struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	UserID        uint           `gorm:"uniqueIndex:udx_drivers_user,where:deleted_at is null;not null" json:"user_id"`
	User          *User          `json:"user,omitempty"`
	Status        DriverStatus   `gorm:"size:20;not null;default:AVAILABLE" json:"status"`
	LicenseNumber string         `gorm:"uniqueIndex:udx_drivers_license,where:deleted_at is null;size:64;not null" json:"license_number"`
	LicenseExpiry time.Time      `json:"license_expiry"`
	Rating        float64        `json:"rating"`
	TotalTrips    int            `json:"total_trips"`
	TotalKm       float64        `json:"total_km"`
	AverageRating float64        `json:"average_rating"`
}

func (d *Driver) OwnerUserID() uint { return d.UserID }
