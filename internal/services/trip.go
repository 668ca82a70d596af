package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/validation"
)

type TripService struct {
	Trips     *repo.TripRepo
	Drivers   *repo.DriverRepo
	Vehicles  *repo.VehicleRepo
	Locations *repo.LocationRepo
}

func NewTripService(trips *repo.TripRepo, drivers *repo.DriverRepo, vehicles *repo.VehicleRepo, locations *repo.LocationRepo) *TripService {
	return &TripService{Trips: trips, Drivers: drivers, Vehicles: vehicles, Locations: locations}
}

type TripCreateInput struct {
	TripDate         time.Time `json:"trip_date"`
	DepartureTime    string    `json:"departure_time"`
	EstimatedArrival string    `json:"estimated_arrival"`
	PickupLocation   string    `json:"pickup_location"`
	DropoffLocation  string    `json:"dropoff_location"`
	Destination      string    `json:"destination"`
	Type             string    `json:"type"`
	PassengersCount  int       `json:"passengers_count"`
	KmStart          float64   `json:"km_start"`
	Notes            string    `json:"notes"`
	AgencyID         uint      `json:"agency_id"`
	HotelID          uint      `json:"hotel_id"`
	VehicleID        uint      `json:"vehicle_id"`
	DriverID         uint      `json:"driver_id"`
}

// TripUpdateInput carries a partial update; nil fields are untouched.
type TripUpdateInput struct {
	TripDate         *time.Time `json:"trip_date"`
	DepartureTime    *string    `json:"departure_time"`
	EstimatedArrival *string    `json:"estimated_arrival"`
	ActualArrival    *string    `json:"actual_arrival"`
	PickupLocation   *string    `json:"pickup_location"`
	DropoffLocation  *string    `json:"dropoff_location"`
	Destination      *string    `json:"destination"`
	Type             *string    `json:"type"`
	Status           *string    `json:"status"`
	PassengersCount  *int       `json:"passengers_count"`
	KmStart          *float64   `json:"km_start"`
	KmEnd            *float64   `json:"km_end"`
	Distance         *float64   `json:"distance_travelled"`
	TripPrice        *float64   `json:"trip_price"`
	ActualCost       *float64   `json:"actual_cost"`
	Notes            *string    `json:"notes"`
	AgencyID         *uint      `json:"agency_id"`
	HotelID          *uint      `json:"hotel_id"`
	VehicleID        *uint      `json:"vehicle_id"`
	DriverID         *uint      `json:"driver_id"`
}

// ownDriverID resolves the caller's driver profile for scoped reads.
// A driver without a profile owns nothing, which is distinct from an
// unscoped caller (id 0 means "no filter").
func (s *TripService) ownDriverID(caller Caller) (uint, bool, error) {
	driver, err := s.Drivers.ByUserID(caller.UserID)
	if err != nil {
		return 0, false, apperr.Storage(err)
	}
	if driver == nil {
		return 0, false, nil
	}
	return driver.ID, true, nil
}

// List returns the trips the caller may see. Driver scope is pushed down
// to the repository so invisible rows never leave storage.
func (s *TripService) List(caller Caller) ([]models.Trip, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceTrip) {
		return nil, apperr.Unauthorized("cannot view trips")
	}
	var driverID uint
	if policy.ScopeForRole(caller.Role, policy.ResourceTrip) == policy.ScopeOwn {
		id, ok, err := s.ownDriverID(caller)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []models.Trip{}, nil
		}
		driverID = id
	}
	trips, err := s.Trips.List(driverID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return trips, nil
}

func (s *TripService) Get(id uint, caller Caller) (*models.Trip, error) {
	trip, err := s.Trips.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if trip == nil {
		return nil, apperr.NotFound("trip")
	}
	if !policy.CanViewEntity(caller.Role, caller.UserID, trip) {
		return nil, apperr.Unauthorized("cannot view this trip")
	}
	return trip, nil
}

// Create builds a new SCHEDULED trip. Drivers are always assigned to
// themselves regardless of the payload; managers and above must name a
// driver explicitly.
func (s *TripService) Create(caller Caller, in TripCreateInput) (*models.Trip, error) {
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceTrip, nil, policy.ActionCreate) {
		return nil, apperr.Unauthorized("cannot create trips")
	}

	v := validation.Violations{}
	validation.Required("departure_time", in.DepartureTime, v)
	validation.Required("pickup_location", in.PickupLocation, v)
	validation.Required("destination", in.Destination, v)
	validation.PositiveInt("passengers_count", in.PassengersCount, v)
	validation.NonNegativeFloat("km_start", in.KmStart, v)
	if in.TripDate.IsZero() {
		v["trip_date"] = "required"
	}
	if in.AgencyID == 0 {
		v["agency_id"] = "required"
	}
	if in.HotelID == 0 {
		v["hotel_id"] = "required"
	}
	if in.VehicleID == 0 {
		v["vehicle_id"] = "required"
	}
	if !v.Empty() {
		field, msg := v.First()
		return nil, apperr.Invalid(field, msg)
	}

	tripType := models.TripType(in.Type)
	if in.Type == "" {
		tripType = models.TripOut
	} else if tripType != models.TripOut && tripType != models.TripIn {
		return nil, apperr.Invalid("type", "must be OUT or IN")
	}

	driverID := in.DriverID
	if caller.Role == policy.RoleDriver {
		// Drivers auto-assign themselves; any driver_id in the payload is ignored.
		id, ok, err := s.ownDriverID(caller)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Invalid("driver_id", "no driver profile for this user")
		}
		driverID = id
	} else {
		if driverID == 0 {
			return nil, apperr.Invalid("driver_id", "driver must be assigned for this role")
		}
		driver, err := s.Drivers.ByID(driverID)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		if driver == nil {
			return nil, apperr.Invalid("driver_id", "unknown driver")
		}
	}

	trip := &models.Trip{
		Reference:        uuid.NewString(),
		TripDate:         in.TripDate,
		DepartureTime:    in.DepartureTime,
		EstimatedArrival: in.EstimatedArrival,
		PickupLocation:   in.PickupLocation,
		DropoffLocation:  in.DropoffLocation,
		Destination:      in.Destination,
		Type:             tripType,
		Status:           models.TripScheduled,
		PassengersCount:  in.PassengersCount,
		KmStart:          in.KmStart,
		Notes:            in.Notes,
		AgencyID:         in.AgencyID,
		HotelID:          in.HotelID,
		VehicleID:        in.VehicleID,
		DriverID:         driverID,
	}
	if err := s.Trips.Create(trip); err != nil {
		return nil, apperr.Storage(err)
	}
	return trip, nil
}

// Update applies a partial update. Fields outside the caller's allowed
// set are silently dropped rather than rejected: a driver updating their
// own trip cannot move it to another driver, vehicle, agency or hotel,
// and cannot touch status, even if those keys are present in the payload.
func (s *TripService) Update(id uint, caller Caller, in TripUpdateInput) (*models.Trip, error) {
	trip, err := s.Trips.ByID(id)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if trip == nil {
		return nil, apperr.NotFound("trip")
	}
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceTrip, trip, policy.ActionUpdate) {
		return nil, apperr.Unauthorized("cannot update this trip")
	}

	if in.TripDate != nil {
		trip.TripDate = *in.TripDate
	}
	if in.DepartureTime != nil {
		trip.DepartureTime = *in.DepartureTime
	}
	if in.EstimatedArrival != nil {
		trip.EstimatedArrival = *in.EstimatedArrival
	}
	if in.ActualArrival != nil {
		trip.ActualArrival = *in.ActualArrival
	}
	if in.PickupLocation != nil {
		trip.PickupLocation = *in.PickupLocation
	}
	if in.DropoffLocation != nil {
		trip.DropoffLocation = *in.DropoffLocation
	}
	if in.Destination != nil {
		trip.Destination = *in.Destination
	}
	if in.PassengersCount != nil {
		trip.PassengersCount = *in.PassengersCount
	}
	if in.KmStart != nil {
		trip.KmStart = *in.KmStart
	}
	if in.KmEnd != nil {
		trip.KmEnd = *in.KmEnd
	}
	if in.Distance != nil {
		trip.DistanceTravelled = *in.Distance
	}
	if in.TripPrice != nil {
		trip.TripPrice = *in.TripPrice
	}
	if in.ActualCost != nil {
		trip.ActualCost = *in.ActualCost
	}
	if in.Notes != nil {
		trip.Notes = *in.Notes
	}
	if in.Type != nil {
		t := models.TripType(*in.Type)
		if t != models.TripOut && t != models.TripIn {
			return nil, apperr.Invalid("type", "must be OUT or IN")
		}
		trip.Type = t
	}

	if policy.HasMinimumRole(caller.Role, policy.RoleManager) {
		if in.Status != nil {
			next := models.TripStatus(*in.Status)
			if !next.Valid() {
				return nil, apperr.Invalid("status", "unknown status")
			}
			if trip.Status.Terminal() && next != trip.Status {
				return nil, apperr.Invalid("status", "completed or cancelled trips cannot change status")
			}
			trip.Status = next
		}
		if in.AgencyID != nil {
			trip.AgencyID = *in.AgencyID
		}
		if in.HotelID != nil {
			trip.HotelID = *in.HotelID
		}
		if in.VehicleID != nil {
			trip.VehicleID = *in.VehicleID
		}
		if in.DriverID != nil {
			trip.DriverID = *in.DriverID
		}
	}

	if err := s.Trips.Save(trip); err != nil {
		return nil, apperr.Storage(err)
	}
	return trip, nil
}

func (s *TripService) Delete(id uint, caller Caller) error {
	trip, err := s.Trips.ByID(id)
	if err != nil {
		return apperr.Storage(err)
	}
	if trip == nil {
		return apperr.NotFound("trip")
	}
	if !policy.CanMutateEntity(caller.Role, caller.UserID, policy.ResourceTrip, trip, policy.ActionDelete) {
		return apperr.Unauthorized("cannot delete trips")
	}
	if err := s.Trips.SoftDelete(id); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

// Stats returns trip counts scoped like List.
func (s *TripService) Stats(caller Caller) (repo.TripStats, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceTrip) {
		return repo.TripStats{}, apperr.Unauthorized("cannot view trips")
	}
	var driverID uint
	if policy.ScopeForRole(caller.Role, policy.ResourceTrip) == policy.ScopeOwn {
		id, ok, err := s.ownDriverID(caller)
		if err != nil {
			return repo.TripStats{}, err
		}
		if !ok {
			return repo.TripStats{}, nil
		}
		driverID = id
	}
	stats, err := s.Trips.Stats(driverID)
	if err != nil {
		return repo.TripStats{}, apperr.Storage(err)
	}
	return stats, nil
}

// TotalPassengers sums passengers over the caller's visible trips.
func (s *TripService) TotalPassengers(caller Caller) (int64, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceTrip) {
		return 0, apperr.Unauthorized("cannot view trips")
	}
	var driverID uint
	if policy.ScopeForRole(caller.Role, policy.ResourceTrip) == policy.ScopeOwn {
		id, ok, err := s.ownDriverID(caller)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, nil
		}
		driverID = id
	}
	total, err := s.Trips.TotalPassengers(driverID)
	if err != nil {
		return 0, apperr.Storage(err)
	}
	return total, nil
}

// Upcoming lists the caller's visible trips on a given day, ordered by
// departure time. The day defaults to today at the handler.
func (s *TripService) Upcoming(caller Caller, day time.Time) ([]models.Trip, error) {
	if !policy.CanAccessResource(caller.Role, policy.ResourceTrip) {
		return nil, apperr.Unauthorized("cannot view trips")
	}
	var driverID uint
	if policy.ScopeForRole(caller.Role, policy.ResourceTrip) == policy.ScopeOwn {
		id, ok, err := s.ownDriverID(caller)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []models.Trip{}, nil
		}
		driverID = id
	}
	trips, err := s.Trips.UpcomingForDate(driverID, day)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return trips, nil
}

// ReferenceData bundles the lookup lists the trip form needs. It exposes
// agencies and hotels, so it is manager-and-above like those resources.
type ReferenceData struct {
	Agencies []models.Agency  `json:"agencies"`
	Hotels   []models.Hotel   `json:"hotels"`
	Drivers  []models.Driver  `json:"drivers"`
	Vehicles []models.Vehicle `json:"vehicles"`
}

func (s *TripService) ReferenceData(caller Caller) (*ReferenceData, error) {
	if !policy.HasMinimumRole(caller.Role, policy.RoleManager) {
		return nil, apperr.Unauthorized("cannot view reference data")
	}
	agencies, err := s.Locations.ListAgencies()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	hotels, err := s.Locations.ListHotels()
	if err != nil {
		return nil, apperr.Storage(err)
	}
	drivers, err := s.Drivers.List(0)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	vehicles, err := s.Vehicles.List(0)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	return &ReferenceData{Agencies: agencies, Hotels: hotels, Drivers: drivers, Vehicles: vehicles}, nil
}
