package repo

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
)

type VehicleRepo struct{ DB *gorm.DB }

func NewVehicleRepo(db *gorm.DB) *VehicleRepo { return &VehicleRepo{DB: db} }

func (r *VehicleRepo) withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Assignments", "is_active = ?", true).
		Preload("Assignments.Driver").
		Preload("Assignments.Driver.User").
		Preload("Maintenance", func(db *gorm.DB) *gorm.DB {
			return db.Order("date desc").Limit(3)
		})
}

// List returns vehicles with their active assignment. A non-zero driverID
// restricts results to vehicles that driver is actively assigned to,
// filtered at the storage level.
func (r *VehicleRepo) List(driverID uint) ([]models.Vehicle, error) {
	q := r.withRelations(r.DB)
	if driverID != 0 {
		q = q.Where(
			"id IN (?)",
			r.DB.Model(&models.VehicleAssignment{}).
				Select("vehicle_id").
				Where("driver_id = ? AND is_active = ?", driverID, true),
		)
	}
	var vehicles []models.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ByID returns the vehicle with active assignment and recent maintenance,
// or nil if missing or soft-deleted.
func (r *VehicleRepo) ByID(id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.withRelations(r.DB).First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepo) Create(vehicle *models.Vehicle) error {
	return r.DB.Create(vehicle).Error
}

func (r *VehicleRepo) Save(vehicle *models.Vehicle) error {
	return r.DB.Save(vehicle).Error
}

func (r *VehicleRepo) SoftDelete(id uint) error {
	return r.DB.Delete(&models.Vehicle{}, id).Error
}

// PlateExists reports whether a non-deleted vehicle other than excludeID
// already carries the plate. Advisory; the unique index enforces it.
func (r *VehicleRepo) PlateExists(plate string, excludeID uint) (bool, error) {
	return r.fieldExists("plate", plate, excludeID)
}

// VINExists is the VIN counterpart of PlateExists.
func (r *VehicleRepo) VINExists(vin string, excludeID uint) (bool, error) {
	return r.fieldExists("vin", vin, excludeID)
}

func (r *VehicleRepo) fieldExists(column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&models.Vehicle{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasActiveAssignment reports whether the driver currently holds the
// active assignment on the vehicle.
func (r *VehicleRepo) HasActiveAssignment(vehicleID, driverID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.VehicleAssignment{}).
		Where("vehicle_id = ? AND driver_id = ? AND is_active = ?", vehicleID, driverID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AssignDriver deactivates any active assignment on the vehicle and
// creates the new one in a single transaction, preserving the at-most-one
// active assignment invariant.
func (r *VehicleRepo) AssignDriver(vehicleID, driverID uint) (*models.VehicleAssignment, error) {
	now := time.Now()
	assignment := &models.VehicleAssignment{
		Reference:  uuid.NewString(),
		VehicleID:  vehicleID,
		DriverID:   driverID,
		IsActive:   true,
		AssignedAt: now,
	}
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VehicleAssignment{}).
			Where("vehicle_id = ? AND is_active = ?", vehicleID, true).
			Updates(map[string]any{"is_active": false, "unassigned_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(assignment).Error
	})
	if err != nil {
		return nil, err
	}
	if err := r.DB.Preload("Driver").Preload("Driver.User").First(assignment, assignment.ID).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

// UnassignActive deactivates the vehicle's active assignment, if any.
func (r *VehicleRepo) UnassignActive(vehicleID uint) error {
	return r.DB.Model(&models.VehicleAssignment{}).
		Where("vehicle_id = ? AND is_active = ?", vehicleID, true).
		Updates(map[string]any{"is_active": false, "unassigned_at": time.Now()}).Error
}

// Assignments lists every assignment row for the vehicle, active
// and historical, newest first.
func (r *VehicleRepo) Assignments(vehicleID uint) ([]models.VehicleAssignment, error) {
	var assignments []models.VehicleAssignment
	err := r.DB.Preload("Driver").Preload("Driver.User").
		Where("vehicle_id = ?", vehicleID).
		Order("assigned_at desc").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
