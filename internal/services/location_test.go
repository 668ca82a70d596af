package services

import (
	"testing"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
)

func TestAgency_DriverHardDenied(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(repo.NewLocationRepo(db))
	driverUser := seedUser(t, db, "d@test", policy.RoleDriver)
	agency := seedAgency(t, db, "Desert Tours")

	// Drivers are denied the whole resource, reads included.
	if _, err := svc.ListAgencies(asCaller(driverUser)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.GetAgency(agency.ID, asCaller(driverUser)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.CreateAgency(asCaller(driverUser), AgencyInput{Name: "X"}); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAgency_NameConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(repo.NewLocationRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	seedAgency(t, db, "Desert Tours")

	if _, err := svc.CreateAgency(asCaller(manager), AgencyInput{Name: "Desert Tours"}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAgency_CRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(repo.NewLocationRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)

	agency, err := svc.CreateAgency(asCaller(manager), AgencyInput{Name: "Desert Tours", City: "Dubai", Email: "hello@desert.test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateAgency(agency.ID, asCaller(manager), AgencyInput{City: "Abu Dhabi"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.City != "Abu Dhabi" || updated.Name != "Desert Tours" {
		t.Fatalf("unexpected agency: %+v", updated)
	}

	if err := svc.DeleteAgency(agency.ID, asCaller(manager)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetAgency(agency.ID, asCaller(manager)); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestAgency_InvalidEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(repo.NewLocationRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)

	if _, err := svc.CreateAgency(asCaller(manager), AgencyInput{Name: "X", Email: "not-an-email"}); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestHotel_CRUDAndConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewLocationService(repo.NewLocationRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	driverUser := seedUser(t, db, "d@test", policy.RoleDriver)

	hotel, err := svc.CreateHotel(asCaller(manager), HotelInput{Name: "Marina Hotel", City: "Dubai"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.CreateHotel(asCaller(manager), HotelInput{Name: "Marina Hotel"}); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := svc.ListHotels(asCaller(driverUser)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	if err := svc.DeleteHotel(hotel.ID, asCaller(manager)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	hotels, err := svc.ListHotels(asCaller(manager))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(hotels) != 0 {
		t.Fatalf("soft-deleted hotel still listed")
	}
}
