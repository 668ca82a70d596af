package services

import (
	"testing"
	"time"

	"github.com/ZakariaBatty/fleetdesk/internal/apperr"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
)

func TestDriverCreate_OneProfilePerUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	admin := seedUser(t, db, "admin@test", policy.RoleAdmin)
	target := seedUser(t, db, "d@test", policy.RoleDriver)

	in := DriverCreateInput{UserID: target.ID, LicenseNumber: "LIC-1", LicenseExpiry: time.Now().Add(time.Hour)}
	if _, err := svc.Create(asCaller(admin), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	in.LicenseNumber = "LIC-2"
	if _, err := svc.Create(asCaller(admin), in); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDriverCreate_LicenseUnique(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	admin := seedUser(t, db, "admin@test", policy.RoleAdmin)
	u1 := seedUser(t, db, "d1@test", policy.RoleDriver)
	u2 := seedUser(t, db, "d2@test", policy.RoleDriver)

	in := DriverCreateInput{UserID: u1.ID, LicenseNumber: "LIC-1", LicenseExpiry: time.Now().Add(time.Hour)}
	if _, err := svc.Create(asCaller(admin), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	in.UserID = u2.ID
	if _, err := svc.Create(asCaller(admin), in); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDriverCreate_DriverDenied(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	driverUser := seedUser(t, db, "d@test", policy.RoleDriver)

	in := DriverCreateInput{UserID: driverUser.ID, LicenseNumber: "LIC-1", LicenseExpiry: time.Now().Add(time.Hour)}
	if _, err := svc.Create(asCaller(driverUser), in); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDriverList_Scoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	u1 := seedUser(t, db, "d1@test", policy.RoleDriver)
	u2 := seedUser(t, db, "d2@test", policy.RoleDriver)
	d1 := seedDriver(t, db, u1.ID, "LIC-1")
	seedDriver(t, db, u2.ID, "LIC-2")

	all, err := svc.List(asCaller(manager))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(all))
	}

	own, err := svc.List(asCaller(u1))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(own) != 1 || own[0].ID != d1.ID {
		t.Fatalf("driver should see only their profile, got %d rows", len(own))
	}
}

func TestDriverGet_Ownership(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	u1 := seedUser(t, db, "d1@test", policy.RoleDriver)
	u2 := seedUser(t, db, "d2@test", policy.RoleDriver)
	d1 := seedDriver(t, db, u1.ID, "LIC-1")

	if _, err := svc.Get(d1.ID, asCaller(u1)); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(d1.ID, asCaller(u2)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestDriverUpdate_ManagerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	u1 := seedUser(t, db, "d1@test", policy.RoleDriver)
	d1 := seedDriver(t, db, u1.ID, "LIC-1")

	status := "ON_TRIP"
	// Even on their own profile, drivers cannot mutate.
	if _, err := svc.Update(d1.ID, asCaller(u1), DriverUpdateInput{Status: &status}); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	updated, err := svc.Update(d1.ID, asCaller(manager), DriverUpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if string(updated.Status) != status {
		t.Fatalf("expected %s, got %s", status, updated.Status)
	}

	bad := "SLEEPING"
	if _, err := svc.Update(d1.ID, asCaller(manager), DriverUpdateInput{Status: &bad}); !apperr.IsKind(err, apperr.KindInvalid) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestDriverDelete_SoftDeletes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	u1 := seedUser(t, db, "d1@test", policy.RoleDriver)
	d1 := seedDriver(t, db, u1.ID, "LIC-1")

	if err := svc.Delete(d1.ID, asCaller(manager)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(d1.ID, asCaller(manager)); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDriverExpiringLicenses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDriverService(repo.NewDriverRepo(db), repo.NewUserRepo(db))
	manager := seedUser(t, db, "m@test", policy.RoleManager)
	u1 := seedUser(t, db, "d1@test", policy.RoleDriver)
	u2 := seedUser(t, db, "d2@test", policy.RoleDriver)

	soon := seedDriver(t, db, u1.ID, "LIC-1")
	soon.LicenseExpiry = time.Now().Add(10 * 24 * time.Hour)
	if err := db.Save(soon).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	seedDriver(t, db, u2.ID, "LIC-2") // expires in a year

	expiring, err := svc.ExpiringLicenses(asCaller(manager))
	if err != nil {
		t.Fatalf("expiring: %v", err)
	}
	if len(expiring) != 1 || expiring[0].ID != soon.ID {
		t.Fatalf("expected only the soon-expiring driver, got %d rows", len(expiring))
	}

	if _, err := svc.ExpiringLicenses(asCaller(u1)); !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
