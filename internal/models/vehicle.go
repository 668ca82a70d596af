package models

import (
	"time"

	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "AVAILABLE"
	VehicleInUse       VehicleStatus = "IN_USE"
	VehicleMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"index" json:"deleted_at,omitempty"`
	Model              string              `gorm:"size:128" json:"model"`
	Plate              string              `gorm:"uniqueIndex:udx_vehicles_plate,where:deleted_at is null;size:32;not null" json:"plate"`
	VIN                string              `gorm:"column:vin;uniqueIndex:udx_vehicles_vin,where:deleted_at is null;size:32;not null" json:"vin"`
	RegistrationExpiry time.Time           `json:"registration_expiry"`
	Capacity           int                 `json:"capacity"`
	MonthlyRent        float64             `json:"monthly_rent"`
	Salik              float64             `json:"salik"`
	Owner              string              `gorm:"size:128" json:"owner"`
	KmUsage            float64             `json:"km_usage"`
	Status             VehicleStatus       `gorm:"size:20;not null;default:AVAILABLE" json:"status"`
	LastMaintenance    *time.Time          `json:"last_maintenance,omitempty"`
	NextMaintenance    *time.Time          `json:"next_maintenance,omitempty"`
	Assignments        []VehicleAssignment `json:"assignments,omitempty"`
	Maintenance        []MaintenanceRecord `json:"maintenance,omitempty"`
}

// OwnerUserID resolves the user behind the vehicle's active assignment.
// Requires Assignments (with Driver) preloaded; returns 0 otherwise,
// which policy treats as a deny.
func (v *Vehicle) OwnerUserID() uint {
	for _, a := range v.Assignments {
		if a.IsActive && a.Driver != nil {
			return a.Driver.UserID
		}
	}
	return 0
}

// VehicleAssignment links a vehicle to a driver. At most one assignment
// per vehicle is active at a time; prior links are kept for history.
type VehicleAssignment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Reference    string     `gorm:"size:36" json:"reference"`
	VehicleID    uint       `gorm:"index;not null" json:"vehicle_id"`
	DriverID     uint       `gorm:"index;not null" json:"driver_id"`
	Driver       *Driver    `json:"driver,omitempty"`
	IsActive     bool       `gorm:"index" json:"is_active"`
	AssignedAt   time.Time  `json:"assigned_at"`
	UnassignedAt *time.Time `json:"unassigned_at,omitempty"`
}
