package services

import (
	"time"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/validation"
)

type DriverService struct {
	Drivers *repo.DriverRepo
	Users   *repo.UserRepo
}

func NewDriverService(drivers *repo.DriverRepo, users *repo.UserRepo) *DriverService {
	return &DriverService{Drivers: drivers, Users: users}
}

type DriverCreateInput struct {
	UserID        uint      `json:"user_id"`
	LicenseNumber string    `json:"license_number"`
	LicenseExpiry time.Time `json:"license_expiry"`
	Status        string    `json:"status"`
}

type DriverUpdateInput struct {
	Status        *string    `json:"status"`
	Rating        *float64   `json:"rating"`
	LicenseNumber *string    `json:"license_number"`
	LicenseExpiry *time.Time `json:"license_expiry"`
	TotalTrips    *int       `json:"total_trips"`
	TotalKm       *float64   `json:"total_km"`
	AverageRating *float64   `json:"average_rating"`
}

func parseDriverStatus(s string) (models.DriverStatus, bool) {
	st := models.DriverStatus(s)
	switch st {
	case models.DriverAvailable, models.DriverOnTrip, models.DriverOffDuty:
		return st, true
	}
	return "", false
}

// List returns driver profiles. A driver caller sees only their own.
func (s *DriverService) List(caller Caller) ([]models.Driver, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceDriver) {
		return nil, apperr.Unauthorized("cannot view drivers")
	}
	var userID uint
	if policy.ScopeForRole(caller.Role, policy.ResourceDriver) == policy.ScopeOwn {
		userID = caller.UserID
	}
	drivers, err := s.Drivers.List(userID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return drivers, nil
}

func (s *DriverService) Get(id uint, caller Caller) (*models.Driver, error) {
	driver, err := s.Drivers.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if driver == nil {
		return nil, apperr.NotFound("driver")
	}
	if !policy.CanViewEntity(caller.Role, caller.UserID, driver) {
		return nil, apperr.Unauthorized("cannot view this driver profile")
	}
	return driver, nil
}

// Create registers a driver profile for an existing user. At most one
// active profile may exist per user.
func (s *DriverService) Create(caller Caller, in DriverCreateInput) (*models.Driver, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceDriver, nil, policy.ActionCreate) {
		return nil, apperr.Unauthorized("cannot create drivers")
	}

	v := validation.Violations{}
	validation.Required("license_number", in.LicenseNumber, v)
	if in.UserID == 0 {
		v["user_id"] = "required"
	}
	if in.LicenseExpiry.IsZero() {
		v["license_expiry"] = "required"
	}
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
	}

	status := models.DriverAvailable
	if in.Status != "" {
		st, ok := parseDriverStatus(in.Status)
		if !ok {
			return nil, apperr.Invalid("status", "unknown status")
		}
		status = st
	}

	user, err := s.Users.ByID(in.UserID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, apperr.Invalid("user_id", "unknown user")
	}

	existing, err := s.Drivers.ByUserID(in.UserID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("user already has a driver profile")
	}

	taken, err := s.Drivers.LicenseExists(in.LicenseNumber, 0)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if taken {
		return nil, apperr.Conflict("license number already exists")
	}

	driver := &models.Driver{
		UserID:        in.UserID,
		Status:        status,
		LicenseNumber: in.LicenseNumber,
		LicenseExpiry: in.LicenseExpiry,
	}
	if err := s.Drivers.Create(driver); err != nil {
		return nil, apperr.Storage(err)
	}
	return driver, nil
}

func (s *DriverService) Update(id uint, caller Caller, in DriverUpdateInput) (*models.Driver, error) {
	driver, err := s.Drivers.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if driver == nil {
		return nil, apperr.NotFound("driver")
	}
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceDriver, driver, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot update drivers")
	}

	if in.LicenseNumber != nil && *in.LicenseNumber != driver.LicenseNumber {
		taken, err := s.Drivers.LicenseExists(*in.LicenseNumber, driver.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if taken {
			return nil, apperr.Conflict("license number already exists")
		}
		driver.LicenseNumber = *in.LicenseNumber
	}
	if in.Status != nil {
		st, ok := parseDriverStatus(*in.Status)
		if !ok {
			return nil, apperr.Invalid("status", "unknown status")
		}
		driver.Status = st
	}
	if in.Rating != nil {
		driver.Rating = *in.Rating
	}
	if in.LicenseExpiry != nil {
		driver.LicenseExpiry = *in.LicenseExpiry
	}
	if in.TotalTrips != nil {
		driver.TotalTrips = *in.TotalTrips
	}
	if in.TotalKm != nil {
		driver.TotalKm = *in.TotalKm
	}
	if in.AverageRating != nil {
		driver.AverageRating = *in.AverageRating
	}

	if err := s.Drivers.Save(driver); err != nil {
		return nil, apperr.Storage(err)
	}
	return driver, nil
}

func (s *DriverService) Delete(id uint, caller Caller) error {
	driver, err := s.Drivers.ByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if driver == nil {
		return apperr.NotFound("driver")
	}
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceDriver, driver, policy.ActionDelete) {
		return apperr.Unauthorized("cannot delete drivers")
	}
	if err := s.Drivers.SoftDelete(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// ExpiringLicenses lists drivers whose license expires within 30 days.
func (s *DriverService) ExpiringLicenses(caller Caller) ([]models.Driver, error) {
	if !policy.HasMinimumRole(caller.Role, policy.RoleManager) {
		return nil, apperr.Unauthorized("cannot view drivers")
	}
	drivers, err := s.Drivers.ExpiringLicenses(30 * 24 * time.Hour)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return drivers, nil
}

// TopRated lists the best-rated drivers for the dashboard.
func (s *DriverService) TopRated(caller Caller, limit int) ([]models.Driver, error) {
	if !policy.HasMinimumRole(caller.Role, policy.RoleManager) {
		return nil, apperr.Unauthorized("cannot view drivers")
	}
	if limit <= 0 {
		limit = 5
	}
	drivers, err := s.Drivers.TopRated(limit)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return drivers, nil
}
