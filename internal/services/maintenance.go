package services

import (
	"time"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
)

type MaintenanceService struct {
	Records  *repo.MaintenanceRepo
	Vehicles *repo.VehicleRepo
}

func NewMaintenanceService(records *repo.MaintenanceRepo, vehicles *repo.VehicleRepo) *MaintenanceService {
	return &MaintenanceService{Records: records, Vehicles: vehicles}
}

type MaintenanceCreateInput struct {
	VehicleID   uint       `json:"vehicle_id"`
	Date        time.Time  `json:"date"`
	Type        string     `json:"type"`
	Cost        float64    `json:"cost"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	NextDueDate *time.Time `json:"next_due_date"`
}

type MaintenanceUpdateInput struct {
	Date        *time.Time `json:"date"`
	Type        *string    `json:"type"`
	Cost        *float64   `json:"cost"`
	Description *string    `json:"description"`
	Notes       *string    `json:"notes"`
	NextDueDate *time.Time `json:"next_due_date"`
}

func parseMaintenanceType(s string) (models.MaintenanceType, bool) {
	t := models.MaintenanceType(s)
	switch t {
	case models.MaintenanceOilChange, models.MaintenanceInspection,
		models.MaintenanceTireReplacement, models.MaintenanceService, models.MaintenanceRepair:
		return t, true
	}
	return "", false
}

// List returns maintenance records, optionally for a single vehicle.
func (s *MaintenanceService) List(caller Caller, vehicleID uint) ([]models.MaintenanceRecord, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceMaintenance) {
		return nil, apperr.Unauthorized("cannot view maintenance records")
	}
	records, err := s.Records.List(vehicleID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return records, nil
}

func (s *MaintenanceService) Get(id uint, caller Caller) (*models.MaintenanceRecord, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceMaintenance) {
		return nil, apperr.Unauthorized("cannot view maintenance records")
	}
	record, err := s.Records.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if record == nil {
		return nil, apperr.NotFound("maintenance record")
	}
	return record, nil
}

// Create records a maintenance event and rolls the vehicle's last/next
// maintenance dates forward.
func (s *MaintenanceService) Create(caller Caller, in MaintenanceCreateInput) (*models.MaintenanceRecord, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceMaintenance, nil, policy.ActionCreate) {
		return nil, apperr.Unauthorized("cannot create maintenance records")
	}
	if in.VehicleID == 0 {
		return nil, apperr.Invalid("vehicle_id", "required")
	}
	if in.Date.IsZero() {
		return nil, apperr.Invalid("date", "required")
	}
	mType, ok := parseMaintenanceType(in.Type)
	if !ok {
		return nil, apperr.Invalid("type", "unknown maintenance type")
	}
	if in.Cost < 0 {
		return nil, apperr.Invalid("cost", "must not be negative")
	}

	vehicle, err := s.Vehicles.ByID(in.VehicleID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle")
	}

	record := &models.MaintenanceRecord{
		VehicleID:   in.VehicleID,
		Date:        in.Date,
		Type:        mType,
		Cost:        in.Cost,
		Description: in.Description,
		Notes:       in.Notes,
		NextDueDate: in.NextDueDate,
	}
	if err := s.Records.Create(record); err != nil {
		return nil, apperr.Storage(err)
	}

	date := in.Date
	vehicle.LastMaintenance = &date
	if in.NextDueDate != nil {
		vehicle.NextMaintenance = in.NextDueDate
	}
	if err := s.Vehicles.Save(vehicle); err != nil {
		return nil, apperr.Storage(err)
	}
	return record, nil
}

func (s *MaintenanceService) Update(id uint, caller Caller, in MaintenanceUpdateInput) (*models.MaintenanceRecord, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceMaintenance, nil, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot update maintenance records")
	}
	record, err := s.Records.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if record == nil {
		return nil, apperr.NotFound("maintenance record")
	}

	if in.Type != nil {
		t, ok := parseMaintenanceType(*in.Type)
		if !ok {
			return nil, apperr.Invalid("type", "unknown maintenance type")
		}
		record.Type = t
	}
	if in.Date != nil {
		record.Date = *in.Date
	}
	if in.Cost != nil {
		if *in.Cost < 0 {
			return nil, apperr.Invalid("cost", "must not be negative")
		}
		record.Cost = *in.Cost
	}
	if in.Description != nil {
		record.Description = *in.Description
	}
	if in.Notes != nil {
		record.Notes = *in.Notes
	}
	if in.NextDueDate != nil {
		record.NextDueDate = in.NextDueDate
	}

	if err := s.Records.Save(record); err != nil {
		return nil, apperr.Storage(err)
	}
	return record, nil
}

func (s *MaintenanceService) Delete(id uint, caller Caller) error {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceMaintenance, nil, policy.ActionDelete) {
		return apperr.Unauthorized("cannot delete maintenance records")
	}
	record, err := s.Records.ByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if record == nil {
		return apperr.NotFound("maintenance record")
	}
	if err := s.Records.SoftDelete(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
