package models

import (
	"time"

	"gorm.io/gorm"
)

type TripStatus string

const (
	TripScheduled  TripStatus = "SCHEDULED"
	TripAssigned   TripStatus = "ASSIGNED"
	TripInProgress TripStatus = "IN_PROGRESS"
	TripCompleted  TripStatus = "COMPLETED"
	TripCancelled  TripStatus = "CANCELLED"
)

// Terminal reports whether the status permits no further transitions.
func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

func (s TripStatus) Valid() bool {
	switch s {
	case TripScheduled, TripAssigned, TripInProgress, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// TripType distinguishes outbound and inbound legs.
type TripType string

const (
	TripOut TripType = "OUT"
	TripIn  TripType = "IN"
)

type Trip struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Reference         string         `gorm:"size:36;index" json:"reference"`
	TripDate          time.Time      `json:"trip_date"`
	DepartureTime     string         `gorm:"size:8" json:"departure_time"`
	EstimatedArrival  string         `gorm:"size:8" json:"estimated_arrival,omitempty"`
	ActualArrival     string         `gorm:"size:8" json:"actual_arrival,omitempty"`
	PickupLocation    string         `gorm:"size:255" json:"pickup_location"`
	DropoffLocation   string         `gorm:"size:255" json:"dropoff_location"`
	Destination       string         `gorm:"size:255" json:"destination"`
	Type              TripType       `gorm:"size:8;default:OUT" json:"type"`
	Status            TripStatus     `gorm:"size:20;not null;default:SCHEDULED;index" json:"status"`
	PassengersCount   int            `json:"passengers_count"`
	KmStart           float64        `json:"km_start"`
	KmEnd             float64        `json:"km_end"`
	DistanceTravelled float64        `json:"distance_travelled"`
	TripPrice         float64        `json:"trip_price"`
	ActualCost        float64        `json:"actual_cost"`
	Notes             string         `json:"notes"`
	AgencyID          uint           `gorm:"index" json:"agency_id"`
	Agency            *Agency        `json:"agency,omitempty"`
	HotelID           uint           `gorm:"index" json:"hotel_id"`
	Hotel             *Hotel         `json:"hotel,omitempty"`
	VehicleID         uint           `gorm:"index" json:"vehicle_id"`
	Vehicle           *Vehicle       `json:"vehicle,omitempty"`
	DriverID          uint           `gorm:"index;not null" json:"driver_id"`
	Driver            *Driver        `json:"driver,omitempty"`
}

// OwnerUserID resolves the assigned driver's user. Requires Driver
// preloaded; returns 0 otherwise, which policy treats as a deny.
func (t *Trip) OwnerUserID() uint {
	if t.Driver == nil {
		return 0
	}
	return t.Driver.UserID
}
