// Package repo contains the per-resource repositories. Each repository
// owns the query shaping for its entity, including the ownership filter
// pushed down to the storage layer for driver-scoped reads. Soft-deleted
// rows are excluded by GORM's DeletedAt scoping on every read.
package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/models"
)

type TripRepo struct{ DB *gorm.DB }

func NewTripRepo(db *gorm.DB) *TripRepo { return &TripRepo{DB: db} }

// TripStats summarizes trip counts for the dashboard.
type TripStats struct {
	TotalTrips      int64 `json:"total_trips"`
	CompletedTrips  int64 `json:"completed_trips"`
	InProgressTrips int64 `json:"in_progress_trips"`
	ScheduledTrips  int64 `json:"scheduled_trips"`
}

func (r *TripRepo) withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Driver").Preload("Driver.User").
		Preload("Vehicle").
		Preload("Agency").
		Preload("Hotel")
}

// List returns trips ordered by date, newest first. A non-zero driverID
// restricts results to that driver's trips at the storage level so row
// existence never leaks to scoped callers.
func (r *TripRepo) List(driverID uint) ([]models.Trip, error) {
	q := r.withRelations(r.DB).Order("trip_date desc")
	if driverID != 0 {
		q = q.Where("driver_id = ?", driverID)
	}
	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

// ByID returns the trip with relations, or nil if missing or soft-deleted.
func (r *TripRepo) ByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.withRelations(r.DB).First(&trip, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepo) Create(trip *models.Trip) error {
	if err := r.DB.Create(trip).Error; err != nil {
		return err
	}
	// reload associations for the response
	return r.withRelations(r.DB).First(trip, trip.ID).Error
}

func (r *TripRepo) Save(trip *models.Trip) error {
	if err := r.DB.Save(trip).Error; err != nil {
		return err
	}
	return r.withRelations(r.DB).First(trip, trip.ID).Error
}

// SoftDelete marks the trip deleted. GORM sets DeletedAt.
func (r *TripRepo) SoftDelete(id uint) error {
	return r.DB.Delete(&models.Trip{}, id).Error
}

func (r *TripRepo) scoped(driverID uint) *gorm.DB {
	q := r.DB.Model(&models.Trip{})
	if driverID != 0 {
		q = q.Where("driver_id = ?", driverID)
	}
	return q
}

// Stats counts trips by status, scoped like List.
func (r *TripRepo) Stats(driverID uint) (TripStats, error) {
	var s TripStats
	if err := r.scoped(driverID).Count(&s.TotalTrips).Error; err != nil {
		return s, err
	}
	counts := []struct {
		status models.TripStatus
		dest   *int64
	}{
		{models.TripCompleted, &s.CompletedTrips},
		{models.TripInProgress, &s.InProgressTrips},
		{models.TripScheduled, &s.ScheduledTrips},
	}
	for _, c := range counts {
		if err := r.scoped(driverID).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return s, err
		}
	}
	return s, nil
}

// TotalPassengers sums passenger counts, scoped like List.
func (r *TripRepo) TotalPassengers(driverID uint) (int64, error) {
	var total *int64
	err := r.scoped(driverID).Select("SUM(passengers_count)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// UpcomingForDate lists trips on a given day, scoped like List.
func (r *TripRepo) UpcomingForDate(driverID uint, day time.Time) ([]models.Trip, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	q := r.withRelations(r.DB).
		Where("trip_date >= ? AND trip_date < ?", start, end).
		Order("departure_time asc")
	if driverID != 0 {
		q = q.Where("driver_id = ?", driverID)
	}
	var trips []models.Trip
	if err := q.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}
