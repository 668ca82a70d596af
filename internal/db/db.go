// Package db owns the database lifecycle: connection with retry, schema
// migration and the optional bootstrap seed.
package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/policy"
)

// ConnectAndMigrate opens the database and brings the schema up to date.
// With MIGRATIONS=1 the versioned SQL migrations run; otherwise
// AutoMigrate covers the schema for dev convenience. Seeding only
// happens when DB_SEED is explicitly set.
func ConnectAndMigrate(rawDSN, seedEmail, seedPassword string) (*gorm.DB, error) {
	dsn := NormalizeDSN(rawDSN)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Println("[DB] Using DSN:", maskDSN(dsn))

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		if err := SeedSuperAdmin(conn, seedEmail, seedPassword); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return conn, nil
}

// Migrate runs AutoMigrate for all models.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.Vehicle{},
		&models.VehicleAssignment{},
		&models.Agency{},
		&models.Hotel{},
		&models.Trip{},
		&models.MaintenanceRecord{},
	)
}

// SeedSuperAdmin creates the bootstrap SUPER_ADMIN account if no user
// with that role exists yet. Idempotent.
func SeedSuperAdmin(conn *gorm.DB, email, password string) error {
	var count int64
	if err := conn.Model(&models.User{}).
		Where("role = ?", policy.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    strings.ToLower(email),
		Password: string(hash),
		Name:     "Super Admin",
		Role:     policy.RoleSuperAdmin,
		Status:   models.UserActive,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[DB] Seeded super admin %s", admin.Email)
	return nil
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
