package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
)

type UserRepo struct{ DB *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) List() ([]models.User, error) {
	var users []models.User
	if err := r.DB.Order("name asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepo) ByID(id uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByEmail looks up a user case-insensitively; emails are stored lowercased.
func (r *UserRepo) ByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.DB.Create(user).Error
}

func (r *UserRepo) Save(user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.DB.Save(user).Error
}

func (r *UserRepo) UpdatePassword(id uint, hash string) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Update("password", hash).Error
}

// Deactivate is the user delete path: the row is soft-deleted and the
// status flipped to INACTIVE so historical references stay resolvable.
func (r *UserRepo) Deactivate(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", id).
			Update("status", models.UserInactive).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
