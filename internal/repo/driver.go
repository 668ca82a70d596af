package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
)

type DriverRepo struct{ DB *gorm.DB }

func NewDriverRepo(db *gorm.DB) *DriverRepo { return &DriverRepo{DB: db} }

// List returns drivers with their user summary. A non-zero userID
// restricts results to the driver profile owned by that user.
func (r *DriverRepo) List(userID uint) ([]models.Driver, error) {
	q := r.DB.Preload("User")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	var drivers []models.Driver
	if err := q.Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// ByID returns the driver or nil if missing or soft-deleted.
func (r *DriverRepo) ByID(id uint) (*models.Driver, error) {
	var driver models.Driver
	err := r.DB.Preload("User").First(&driver, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// ByUserID returns the driver profile owned by the user, or nil.
func (r *DriverRepo) ByUserID(userID uint) (*models.Driver, error) {
	var driver models.Driver
	err := r.DB.Where("user_id = ?", userID).First(&driver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepo) Create(driver *models.Driver) error {
	if err := r.DB.Create(driver).Error; err != nil {
		return err
	}
	return r.DB.Preload("User").First(driver, driver.ID).Error
}

func (r *DriverRepo) Save(driver *models.Driver) error {
	if err := r.DB.Save(driver).Error; err != nil {
		return err
	}
	return r.DB.Preload("User").First(driver, driver.ID).Error
}

func (r *DriverRepo) SoftDelete(id uint) error {
	return r.DB.Delete(&models.Driver{}, id).Error
}

// LicenseExists reports whether a non-deleted driver other than excludeID
// already holds the license number. The unique index is the enforcement
// point; this check exists for the friendlier error.
func (r *DriverRepo) LicenseExists(license string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&models.Driver{}).Where("license_number = ?", license)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExpiringLicenses lists drivers whose license expires within the window.
func (r *DriverRepo) ExpiringLicenses(within time.Duration) ([]models.Driver, error) {
	cutoff := time.Now().Add(within)
	var drivers []models.Driver
	err := r.DB.Preload("User").
		Where("license_expiry <= ?", cutoff).
		Order("license_expiry asc").
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}

// TopRated lists the highest-rated drivers.
func (r *DriverRepo) TopRated(limit int) ([]models.Driver, error) {
	var drivers []models.Driver
	err := r.DB.Preload("User").
		Order("average_rating desc").
		Limit(limit).
		Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}
