package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Driver{}, &models.Vehicle{}, &models.VehicleAssignment{},
		&models.Agency{}, &models.Hotel{}, &models.Trip{}, &models.MaintenanceRecord{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role policy.Role) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "x", Name: email, Role: role, Status: models.UserActive}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedDriver(t *testing.T, db *gorm.DB, userID uint, license string) *models.Driver {
	t.Helper()
	driver := &models.Driver{
		UserID:        userID,
		Status:        models.DriverAvailable,
		LicenseNumber: license,
		LicenseExpiry: time.Now().Add(365 * 24 * time.Hour),
	}
	if err := db.Create(driver).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return driver
}

func seedVehicle(t *testing.T, db *gorm.DB, plate, vin string) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{Model: "Sprinter", Plate: plate, VIN: vin, Capacity: 16, Status: models.VehicleAvailable}
	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return vehicle
}

func seedAgency(t *testing.T, db *gorm.DB, name string) *models.Agency {
	t.Helper()
	agency := &models.Agency{Name: name, City: "Dubai"}
	if err := db.Create(agency).Error; err != nil {
		t.Fatalf("seed agency: %v", err)
	}
	return agency
}

func seedHotel(t *testing.T, db *gorm.DB, name string) *models.Hotel {
	t.Helper()
	hotel := &models.Hotel{Name: name, City: "Dubai"}
	if err := db.Create(hotel).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	return hotel
}

func newTripService(db *gorm.DB) *TripService {
	return NewTripService(repo.NewTripRepo(db), repo.NewDriverRepo(db), repo.NewVehicleRepo(db), repo.NewLocationRepo(db))
}

func asCaller(u *models.User) Caller { return Caller{UserID: u.ID, Role: u.Role} }

func validTripInput(agencyID, hotelID, vehicleID, driverID uint) TripCreateInput {
	return TripCreateInput{
		TripDate:        time.Now().Add(24 * time.Hour),
		DepartureTime:   "08:30",
		PickupLocation:  "Marina Hotel",
		Destination:     "Airport T3",
		PassengersCount: 4,
		AgencyID:        agencyID,
		HotelID:         hotelID,
		VehicleID:       vehicleID,
		DriverID:        driverID,
	}
}
