package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/policy"
)

// UserStatus is the account lifecycle state. Users are never hard-deleted;
// the delete path soft-deletes the row and flips status to INACTIVE.
type UserStatus string

const (
	UserActive    UserStatus = "ACTIVE"
	UserInactive  UserStatus = "INACTIVE"
	UserSuspended UserStatus = "SUSPENDED"
)

// User represents an authenticated account in the system.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email     string         `gorm:"uniqueIndex:udx_users_email,where:deleted_at is null;size:255;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	Name      string         `gorm:"size:255" json:"name"`
	Phone     string         `gorm:"size:32" json:"phone"`
	Role      policy.Role    `gorm:"size:20;not null;default:DRIVER" json:"role"`
	Status    UserStatus     `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Driver    *Driver        `json:"driver,omitempty"`
}

func (u *User) OwnerUserID() uint { return u.ID }
