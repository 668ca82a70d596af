package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
)

type MaintenanceRepo struct{ DB *gorm.DB }

func NewMaintenanceRepo(db *gorm.DB) *MaintenanceRepo { return &MaintenanceRepo{DB: db} }

// List returns maintenance records, optionally restricted to one vehicle.
func (r *MaintenanceRepo) List(vehicleID uint) ([]models.MaintenanceRecord, error) {
	q := r.DB.Preload("Vehicle").Order("date desc")
	if vehicleID != 0 {
		q = q.Where("vehicle_id = ?", vehicleID)
	}
	var records []models.MaintenanceRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MaintenanceRepo) ByID(id uint) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	err := r.DB.Preload("Vehicle").First(&record, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *MaintenanceRepo) Create(record *models.MaintenanceRecord) error {
	if err := r.DB.Create(record).Error; err != nil {
		return err
	}
	return r.DB.Preload("Vehicle").First(record, record.ID).Error
}

func (r *MaintenanceRepo) Save(record *models.MaintenanceRecord) error {
	return r.DB.Save(record).Error
}

func (r *MaintenanceRepo) SoftDelete(id uint) error {
	return r.DB.Delete(&models.MaintenanceRecord{}, id).Error
}
