package services

import (
	"testing"
	"time"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
)

func tripFixture(t *testing.T) (svc *TripService, manager, driverUser, otherUser *models.User, driver, other *models.Driver, agencyID, hotelID, vehicleID uint) {
	t.Helper()
	db := setupTestDB(t)
	svc = newTripService(db)
	manager = seedUser(t, db, "manager@test", policy.RoleManager)
	driverUser = seedUser(t, db, "driver@test", policy.RoleDriver)
	otherUser = seedUser(t, db, "other@test", policy.RoleDriver)
	driver = seedDriver(t, db, driverUser.ID, "LIC-1")
	other = seedDriver(t, db, otherUser.ID, "LIC-2")
	agency := seedAgency(t, db, "Desert Tours")
	hotel := seedHotel(t, db, "Marina Hotel")
	vehicle := seedVehicle(t, db, "A-1111", "VIN-1")
	return svc, manager, driverUser, otherUser, driver, other, agency.ID, hotel.ID, vehicle.ID
}

func TestTripCreate_DriverAutoAssignsSelf(t *testing.T) {
	svc, _, driverUser, _, driver, other, agencyID, hotelID, vehicleID := tripFixture(t)

	// Even naming another driver in the payload, a driver creates for themselves.
	in := validTripInput(agencyID, hotelID, vehicleID, other.ID)
	trip, err := svc.Create(asCaller(driverUser), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if trip.DriverID != driver.ID {
		t.Fatalf("expected driver %d, got %d", driver.ID, trip.DriverID)
	}
	if trip.Status != models.TripScheduled {
		t.Fatalf("expected SCHEDULED, got %s", trip.Status)
	}
	if trip.Reference == "" {
		t.Fatal("expected generated reference")
	}
}

func TestTripCreate_ManagerMustNameDriver(t *testing.T) {
	svc, manager, _, _, driver, _, agencyID, hotelID, vehicleID := tripFixture(t)

	in := validTripInput(agencyID, hotelID, vehicleID, 0)
	_, err := svc.Create(asCaller(manager), in)
	if !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}

	in.DriverID = driver.ID
	trip, err := svc.Create(asCaller(manager), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if trip.DriverID != driver.ID {
		t.Fatalf("expected driver %d, got %d", driver.ID, trip.DriverID)
	}
}

func TestTripCreate_DriverWithoutProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTripService(db)
	bare := seedUser(t, db, "bare@test", policy.RoleDriver)
	agency := seedAgency(t, db, "Desert Tours")
	hotel := seedHotel(t, db, "Marina Hotel")
	vehicle := seedVehicle(t, db, "A-1111", "VIN-1")

	_, err := svc.Create(asCaller(bare), validTripInput(agency.ID, hotel.ID, vehicle.ID, 0))
	if !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestTripCreate_MissingFields(t *testing.T) {
	svc, manager, _, _, driver, _, agencyID, hotelID, vehicleID := tripFixture(t)
	in := validTripInput(agencyID, hotelID, vehicleID, driver.ID)
	in.PickupLocation = ""
	if _, err := svc.Create(asCaller(manager), in); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}

	in = validTripInput(agencyID, hotelID, vehicleID, driver.ID)
	in.PassengersCount = 0
	if _, err := svc.Create(asCaller(manager), in); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestTripList_DriverScoped(t *testing.T) {
	svc, manager, driverUser, _, driver, other, agencyID, hotelID, vehicleID := tripFixture(t)

	for _, d := range []uint{driver.ID, other.ID, other.ID} {
		if _, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, d)); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := svc.List(asCaller(manager))
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(all))
	}

	own, err := svc.List(asCaller(driverUser))
	if err != nil {
		t.Fatalf("driver list: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(own))
	}
	if own[0].DriverID != driver.ID {
		t.Fatalf("driver saw someone else's trip")
	}
}

func TestTripList_DriverWithoutProfileSeesNothing(t *testing.T) {
	svc, manager, _, _, driver, _, agencyID, hotelID, vehicleID := tripFixture(t)
	db := svc.Trips.DB
	if _, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, driver.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}
	bare := seedUser(t, db, "bare@test", policy.RoleDriver)

	trips, err := svc.List(asCaller(bare))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("expected empty list, got %d", len(trips))
	}
}

func TestTripGet_OwnershipEnforced(t *testing.T) {
	svc, manager, driverUser, otherUser, driver, _, agencyID, hotelID, vehicleID := tripFixture(t)
	trip, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, driver.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(trip.ID, asCaller(driverUser)); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(trip.ID, asCaller(otherUser)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Get(9999, asCaller(manager)); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTripUpdate_DriverRestrictedFieldsDropped(t *testing.T) {
	svc, manager, driverUser, _, driver, other, agencyID, hotelID, vehicleID := tripFixture(t)
	trip, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, driver.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	notes := "picked up at gate 2"
	status := string(models.TripCompleted)
	updated, err := svc.Update(trip.ID, asCaller(driverUser), TripUpdateInput{
		Notes:    &notes,
		Status:   &status,
		DriverID: &other.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Notes != notes {
		t.Fatal("allowed field was not applied")
	}
	// Restricted keys are dropped, not rejected.
	if updated.Status != models.TripScheduled {
		t.Fatalf("driver changed status to %s", updated.Status)
	}
	if updated.DriverID != driver.ID {
		t.Fatal("driver reassigned the trip")
	}
}

func TestTripUpdate_DriverCannotTouchOthersTrip(t *testing.T) {
	svc, manager, driverUser, _, _, other, agencyID, hotelID, vehicleID := tripFixture(t)
	trip, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, other.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	notes := "hijack"
	_, err = svc.Update(trip.ID, asCaller(driverUser), TripUpdateInput{Notes: &notes})
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestTripUpdate_TerminalStatusFrozen(t *testing.T) {
	svc, manager, _, _, driver, _, agencyID, hotelID, vehicleID := tripFixture(t)
	trip, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, driver.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	completed := string(models.TripCompleted)
	if _, err := svc.Update(trip.ID, asCaller(manager), TripUpdateInput{Status: &completed}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	inProgress := string(models.TripInProgress)
	_, err = svc.Update(trip.ID, asCaller(manager), TripUpdateInput{Status: &inProgress})
	if !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}

	// Re-sending the same terminal status is a no-op, not an error.
	if _, err := svc.Update(trip.ID, asCaller(manager), TripUpdateInput{Status: &completed}); err != nil {
		t.Fatalf("idempotent terminal update: %v", err)
	}
}

func TestTripDelete_DriverDenied(t *testing.T) {
	svc, manager, driverUser, _, driver, _, agencyID, hotelID, vehicleID := tripFixture(t)
	trip, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, driver.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Even the owning driver cannot delete.
	if err := svc.Delete(trip.ID, asCaller(driverUser)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := svc.Delete(trip.ID, asCaller(manager)); err != nil {
		t.Fatalf("manager delete: %v", err)
	}
	// Soft-deleted trips read as missing.
	if _, err := svc.Get(trip.ID, asCaller(manager)); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestTripStats_Scoped(t *testing.T) {
	svc, manager, driverUser, _, driver, other, agencyID, hotelID, vehicleID := tripFixture(t)
	if _, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, driver.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(asCaller(manager), validTripInput(agencyID, hotelID, vehicleID, other.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := svc.Stats(asCaller(manager))
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalTrips != 2 || stats.ScheduledTrips != 2 {
		t.Fatalf("unexpected manager stats: %+v", stats)
	}

	own, err := svc.Stats(asCaller(driverUser))
	if err != nil {
		t.Fatalf("driver stats: %v", err)
	}
	if own.TotalTrips != 1 {
		t.Fatalf("expected 1 own trip, got %d", own.TotalTrips)
	}

	total, err := svc.TotalPassengers(asCaller(driverUser))
	if err != nil {
		t.Fatalf("passengers: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected 4 passengers, got %d", total)
	}
}

func TestTripUpcoming_ScopedToDay(t *testing.T) {
	svc, manager, driverUser, _, driver, other, agencyID, hotelID, vehicleID := tripFixture(t)

	tomorrow := time.Now().Add(24 * time.Hour)
	in := validTripInput(agencyID, hotelID, vehicleID, driver.ID)
	if _, err := svc.Create(asCaller(manager), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	in = validTripInput(agencyID, hotelID, vehicleID, other.ID)
	if _, err := svc.Create(asCaller(manager), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	// A trip on another day stays out of the schedule.
	in = validTripInput(agencyID, hotelID, vehicleID, driver.ID)
	in.TripDate = tomorrow.Add(7 * 24 * time.Hour)
	if _, err := svc.Create(asCaller(manager), in); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := svc.Upcoming(asCaller(manager), tomorrow)
	if err != nil {
		t.Fatalf("manager upcoming: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 trips tomorrow, got %d", len(all))
	}

	own, err := svc.Upcoming(asCaller(driverUser), tomorrow)
	if err != nil {
		t.Fatalf("driver upcoming: %v", err)
	}
	if len(own) != 1 || own[0].DriverID != driver.ID {
		t.Fatalf("expected only the driver's own trip, got %d", len(own))
	}
}

func TestTripReferenceData_ManagerOnly(t *testing.T) {
	svc, manager, driverUser, _, _, _, _, _, _ := tripFixture(t)

	if _, err := svc.ReferenceData(asCaller(driverUser)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	data, err := svc.ReferenceData(asCaller(manager))
	if err != nil {
		t.Fatalf("reference data: %v", err)
	}
	if len(data.Agencies) != 1 || len(data.Hotels) != 1 || len(data.Drivers) != 2 || len(data.Vehicles) != 1 {
		t.Fatalf("unexpected reference data: %+v", data)
	}
}
