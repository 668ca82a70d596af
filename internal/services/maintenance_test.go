package services

import (
	"testing"
	"time"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
)

func TestMaintenanceCreate_RollsVehicleDates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(repo.NewMaintenanceRepo(db), repo.NewVehicleRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	vehicle := seedVehicle(t, db, "A-1111", "VIN-1")

	date := time.Now().Truncate(time.Second)
	due := date.Add(90 * 24 * time.Hour)
	record, err := svc.Create(asCaller(manager), MaintenanceCreateInput{
		VehicleID:   vehicle.ID,
		Date:        date,
		Type:        "oil-change",
		Cost:        120,
		Description: "scheduled oil change",
		NextDueDate: &due,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.Vehicle == nil || record.Vehicle.ID != vehicle.ID {
		t.Fatal("vehicle relation not loaded")
	}

	reloaded, err := repo.NewVehicleRepo(db).ByID(vehicle.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.LastMaintenance == nil || !reloaded.LastMaintenance.Equal(date) {
		t.Fatalf("last maintenance not rolled: %v", reloaded.LastMaintenance)
	}
	if reloaded.NextMaintenance == nil || !reloaded.NextMaintenance.Equal(due) {
		t.Fatalf("next maintenance not rolled: %v", reloaded.NextMaintenance)
	}
}

func TestMaintenanceCreate_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(repo.NewMaintenanceRepo(db), repo.NewVehicleRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	vehicle := seedVehicle(t, db, "A-1111", "VIN-1")

	in := MaintenanceCreateInput{VehicleID: vehicle.ID, Date: time.Now(), Type: "vacuum"}
	if _, err := svc.Create(asCaller(manager), in); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid type, got %v", err)
	}
	in.Type = "repair"
	in.VehicleID = 999
	if _, err := svc.Create(asCaller(manager), in); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected vehicle not found, got %v", err)
	}
}

func TestMaintenance_DriverHardDenied(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(repo.NewMaintenanceRepo(db), repo.NewVehicleRepo(db))
	driverUser := seedUser(t, db, "d@test", policy.RoleDriver)

	if _, err := svc.List(asCaller(driverUser), 0); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Create(asCaller(driverUser), MaintenanceCreateInput{}); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestMaintenanceList_FilterByVehicle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(repo.NewMaintenanceRepo(db), repo.NewVehicleRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	v1 := seedVehicle(t, db, "A-1111", "VIN-1")
	v2 := seedVehicle(t, db, "A-2222", "VIN-2")

	for _, vid := range []uint{v1.ID, v1.ID, v2.ID} {
		if _, err := svc.Create(asCaller(manager), MaintenanceCreateInput{
			VehicleID: vid, Date: time.Now(), Type: "inspection",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := svc.List(asCaller(manager), 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	scoped, err := svc.List(asCaller(manager), v1.ID)
	if err != nil {
		t.Fatalf("scoped list: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 records for vehicle, got %d", len(scoped))
	}
}

func TestMaintenanceUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(repo.NewMaintenanceRepo(db), repo.NewVehicleRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	vehicle := seedVehicle(t, db, "A-1111", "VIN-1")

	record, err := svc.Create(asCaller(manager), MaintenanceCreateInput{
		VehicleID: vehicle.ID, Date: time.Now(), Type: "service", Cost: 200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cost := 250.0
	updated, err := svc.Update(record.ID, asCaller(manager), MaintenanceUpdateInput{Cost: &cost})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Cost != cost {
		t.Fatalf("expected cost %v, got %v", cost, updated.Cost)
	}

	bad := -5.0
	if _, err := svc.Update(record.ID, asCaller(manager), MaintenanceUpdateInput{Cost: &bad}); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}

	if err := svc.Delete(record.ID, asCaller(manager)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(record.ID, asCaller(manager)); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
