package services

import (
	"time"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/validation"
)

type VehicleService struct {
	Vehicles *repo.VehicleRepo
	Drivers  *repo.DriverRepo
}

func NewVehicleService(vehicles *repo.VehicleRepo, drivers *repo.DriverRepo) *VehicleService {
	return &VehicleService{Vehicles: vehicles, Drivers: drivers}
}

type VehicleCreateInput struct {
	Model              string     `json:"model"`
	Plate              string     `json:"plate"`
	VIN                string     `json:"vin"`
	RegistrationExpiry time.Time  `json:"registration_expiry"`
	Capacity           int        `json:"capacity"`
	MonthlyRent        float64    `json:"monthly_rent"`
	Salik              float64    `json:"salik"`
	Owner              string     `json:"owner"`
	KmUsage            float64    `json:"km_usage"`
	Status             string     `json:"status"`
	LastMaintenance    *time.Time `json:"last_maintenance"`
	NextMaintenance    *time.Time `json:"next_maintenance"`
}

type VehicleUpdateInput struct {
	Model              *string    `json:"model"`
	Plate              *string    `json:"plate"`
	VIN                *string    `json:"vin"`
	RegistrationExpiry *time.Time `json:"registration_expiry"`
	Capacity           *int       `json:"capacity"`
	MonthlyRent        *float64   `json:"monthly_rent"`
	Salik              *float64   `json:"salik"`
	Owner              *string    `json:"owner"`
	KmUsage            *float64   `json:"km_usage"`
	Status             *string    `json:"status"`
	LastMaintenance    *time.Time `json:"last_maintenance"`
	NextMaintenance    *time.Time `json:"next_maintenance"`
}

func parseVehicleStatus(s string) (models.VehicleStatus, bool) {
	st := models.VehicleStatus(s)
	switch st {
	case models.VehicleAvailable, models.VehicleInUse, models.VehicleMaintenance:
		return st, true
	}
	return "", false
}

// List returns vehicles. Drivers see only vehicles they are actively
// assigned to; a driver caller with no profile sees an empty fleet.
func (s *VehicleService) List(caller Caller) ([]models.Vehicle, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceVehicle) {
		return nil, apperr.Unauthorized("cannot view vehicles")
	}
	var driverID uint
	if policy.ScopeForRole(caller.Role, policy.ResourceVehicle) == policy.ScopeOwn {
		id, ok, err := s.ownDriverID(caller)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []models.Vehicle{}, nil
		}
		driverID = id
	}
	vehicles, err := s.Vehicles.List(driverID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return vehicles, nil
}

func (s *VehicleService) Get(id uint, caller Caller) (*models.Vehicle, error) {
	vehicle, err := s.Vehicles.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle")
	}
	if !policy.CanViewEntity(caller.Role, caller.UserID, vehicle) {
		return nil, apperr.Unauthorized("cannot view this vehicle")
	}
	return vehicle, nil
}

func (s *VehicleService) Create(caller Caller, in VehicleCreateInput) (*models.Vehicle, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceVehicle, nil, policy.ActionCreate) {
		return nil, apperr.Unauthorized("cannot create vehicles")
	}

	v := validation.Violations{}
	validation.Required("plate", in.Plate, v)
	validation.Required("vin", in.VIN, v)
	validation.PositiveInt("capacity", in.Capacity, v)
	validation.NonNegativeFloat("km_usage", in.KmUsage, v)
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
	}

	status := models.VehicleAvailable
	if in.Status != "" {
		st, ok := parseVehicleStatus(in.Status)
		if !ok {
			return nil, apperr.Invalid("status", "unknown status")
		}
		status = st
	}

	if taken, err := s.Vehicles.PlateExists(in.Plate, 0); err != nil {
		return nil, apperr.Storage(err)
	} else if taken {
		return nil, apperr.Conflict("plate already exists")
	}
	if taken, err := s.Vehicles.VINExists(in.VIN, 0); err != nil {
		return nil, apperr.Storage(err)
	} else if taken {
		return nil, apperr.Conflict("vin already exists")
	}

	vehicle := &models.Vehicle{
		Model:              in.Model,
		Plate:              in.Plate,
		VIN:                in.VIN,
		RegistrationExpiry: in.RegistrationExpiry,
		Capacity:           in.Capacity,
		MonthlyRent:        in.MonthlyRent,
		Salik:              in.Salik,
		Owner:              in.Owner,
		KmUsage:            in.KmUsage,
		Status:             status,
		LastMaintenance:    in.LastMaintenance,
		NextMaintenance:    in.NextMaintenance,
	}
	if err := s.Vehicles.Create(vehicle); err != nil {
		return nil, apperr.Storage(err)
	}
	return vehicle, nil
}

func (s *VehicleService) Update(id uint, caller Caller, in VehicleUpdateInput) (*models.Vehicle, error) {
	vehicle, err := s.Vehicles.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle")
	}
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceVehicle, vehicle, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot update vehicles")
	}

	if in.Plate != nil && *in.Plate != vehicle.Plate {
		taken, err := s.Vehicles.PlateExists(*in.Plate, vehicle.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if taken {
			return nil, apperr.Conflict("plate already exists")
		}
		vehicle.Plate = *in.Plate
	}
	if in.VIN != nil && *in.VIN != vehicle.VIN {
		taken, err := s.Vehicles.VINExists(*in.VIN, vehicle.ID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if taken {
			return nil, apperr.Conflict("vin already exists")
		}
		vehicle.VIN = *in.VIN
	}
	if in.Status != nil {
		st, ok := parseVehicleStatus(*in.Status)
		if !ok {
			return nil, apperr.Invalid("status", "unknown status")
		}
		vehicle.Status = st
	}
	if in.Model != nil {
		vehicle.Model = *in.Model
	}
	if in.RegistrationExpiry != nil {
		vehicle.RegistrationExpiry = *in.RegistrationExpiry
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return nil, apperr.Invalid("capacity", "must be positive")
		}
		vehicle.Capacity = *in.Capacity
	}
	if in.MonthlyRent != nil {
		vehicle.MonthlyRent = *in.MonthlyRent
	}
	if in.Salik != nil {
		vehicle.Salik = *in.Salik
	}
	if in.Owner != nil {
		vehicle.Owner = *in.Owner
	}
	if in.KmUsage != nil {
		if *in.KmUsage < 0 {
			return nil, apperr.Invalid("km_usage", "must not be negative")
		}
		vehicle.KmUsage = *in.KmUsage
	}
	if in.LastMaintenance != nil {
		vehicle.LastMaintenance = in.LastMaintenance
	}
	if in.NextMaintenance != nil {
		vehicle.NextMaintenance = in.NextMaintenance
	}

	if err := s.Vehicles.Save(vehicle); err != nil {
		return nil, apperr.Storage(err)
	}
	return s.Get(id, caller)
}

func (s *VehicleService) Delete(id uint, caller Caller) error {
	vehicle, err := s.Vehicles.ByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if vehicle == nil {
		return apperr.NotFound("vehicle")
	}
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceVehicle, vehicle, policy.ActionDelete) {
		return apperr.Unauthorized("cannot delete vehicles")
	}
	if err := s.Vehicles.SoftDelete(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// AssignDriver gives the driver the vehicle's active assignment. Any
// existing active assignment is closed first; re-assigning the same pair
// is a conflict, not a silent no-op.
func (s *VehicleService) AssignDriver(vehicleID, driverID uint, caller Caller) (*models.VehicleAssignment, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceVehicle, nil, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot assign drivers")
	}

	vehicle, err := s.Vehicles.ByID(vehicleID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle")
	}
	driver, err := s.Drivers.ByID(driverID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if driver == nil {
		return nil, apperr.NotFound("driver")
	}

	already, err := s.Vehicles.HasActiveAssignment(vehicleID, driverID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if already {
		return nil, apperr.Conflict("driver is already assigned to this vehicle")
	}

	assignment, err := s.Vehicles.AssignDriver(vehicleID, driverID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return assignment, nil
}

// UnassignDriver closes the vehicle's active assignment, if any.
func (s *VehicleService) UnassignDriver(vehicleID uint, caller Caller) error {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceVehicle, nil, policy.ActionUpdate) {
		return apperr.Unauthorized("cannot assign drivers")
	}
	vehicle, err := s.Vehicles.ByID(vehicleID)
	if err != nil {
		return apperr.Storage(err)
	}
	if vehicle == nil {
		return apperr.NotFound("vehicle")
	}
	if err := s.Vehicles.UnassignActive(vehicleID); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Assignments returns the vehicle's full assignment history.
func (s *VehicleService) Assignments(vehicleID uint, caller Caller) ([]models.VehicleAssignment, error) {
	if !policy.HasMinimumRole(caller.Role, policy.RoleManager) {
		return nil, apperr.Unauthorized("cannot view vehicle assignments")
	}
	vehicle, err := s.Vehicles.ByID(vehicleID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle")
	}
	assignments, err := s.Vehicles.Assignments(vehicleID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return assignments, nil
}

func (s *VehicleService) ownDriverID(caller Caller) (uint, bool, error) {
	driver, err := s.Drivers.ByUserID(caller.UserID)
	if err != nil {
		return 0, false, apperr.Storage(err)
	}
	if driver == nil {
		return 0, false, nil
	}
	return driver.ID, true, nil
}
