package models

import (
	"time"

	"gorm.io/gorm"
)

// MaintenanceType values mirror the workshop categories used in reports.
type MaintenanceType string

const (
	MaintenanceOilChange       MaintenanceType = "oil-change"
	MaintenanceInspection      MaintenanceType = "inspection"
	MaintenanceTireReplacement MaintenanceType = "tire-replacement"
	MaintenanceService         MaintenanceType = "service"
	MaintenanceRepair          MaintenanceType = "repair"
)

// MaintenanceRecord belongs to a vehicle. Visible to MANAGER and above only.
type MaintenanceRecord struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
	VehicleID   uint            `gorm:"index;not null" json:"vehicle_id"`
	Vehicle     *Vehicle        `json:"vehicle,omitempty"`
	Date        time.Time       `json:"date"`
	Type        MaintenanceType `gorm:"size:32;not null" json:"type"`
	Cost        float64         `json:"cost"`
	Description string          `gorm:"size:255" json:"description"`
	Notes       string          `json:"notes,omitempty"`
	NextDueDate *time.Time      `json:"next_due_date,omitempty"`
}
