package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
)

// LocationRepo covers both reference entities, agencies and hotels.
type LocationRepo struct{ DB *gorm.DB }

func NewLocationRepo(db *gorm.DB) *LocationRepo { return &LocationRepo{DB: db} }

func (r *LocationRepo) ListAgencies() ([]models.Agency, error) {
	var agencies []models.Agency
	if err := r.DB.Order("name asc").Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *LocationRepo) AgencyByID(id uint) (*models.Agency, error) {
	var agency models.Agency
	err := r.DB.First(&agency, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// AgencyNameExists reports whether a non-deleted agency other than
// excludeID already carries the name.
func (r *LocationRepo) AgencyNameExists(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&models.Agency{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LocationRepo) CreateAgency(agency *models.Agency) error { return r.DB.Create(agency).Error }
func (r *LocationRepo) SaveAgency(agency *models.Agency) error   { return r.DB.Save(agency).Error }

func (r *LocationRepo) SoftDeleteAgency(id uint) error {
	return r.DB.Delete(&models.Agency{}, id).Error
}

func (r *LocationRepo) ListHotels() ([]models.Hotel, error) {
	var hotels []models.Hotel
	if err := r.DB.Order("name asc").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *LocationRepo) HotelByID(id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.DB.First(&hotel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *LocationRepo) HotelNameExists(name string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.Model(&models.Hotel{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LocationRepo) CreateHotel(hotel *models.Hotel) error { return r.DB.Create(hotel).Error }
func (r *LocationRepo) SaveHotel(hotel *models.Hotel) error   { return r.DB.Save(hotel).Error }

func (r *LocationRepo) SoftDeleteHotel(id uint) error {
	return r.DB.Delete(&models.Hotel{}, id).Error
}
