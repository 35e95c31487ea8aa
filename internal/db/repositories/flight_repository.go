package repositories

import (
	"context"
	"fmt"
	"time"

	gormModels "skyward/tower/internal/models/gorm"

	"gorm.io/gorm"
)

// FlightRepository handles flight table operations using GORM
type FlightRepository struct {
	db *gorm.DB
}

func NewFlightRepository(db *gorm.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// GetByID retrieves a flight by id regardless of its deleted flag.
func (r *FlightRepository) GetByID(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&flight).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

// GetCurrent retrieves a non-deleted flight by id.
func (r *FlightRepository) GetCurrent(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&flight).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

// GetCurrentWithAirplane retrieves a non-deleted flight with its
// airplane preloaded, for the capacity read at booking time.
func (r *FlightRepository) GetCurrentWithAirplane(ctx context.Context, id uint) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	err := r.db.WithContext(ctx).
		Preload("Airplane").
		Where("id = ? AND deleted = ?", id, false).
		First(&flight).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch flight: %w", err)
	}

	return &flight, nil
}

func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to create flight: %w", err)
	}
	return nil
}

// UpdateFields writes only the supplied columns.
func (r *FlightRepository) UpdateFields(ctx context.Context, id uint, changes map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("id = ?", id).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("failed to update flight: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("flight not found with ID: %d", id)
	}
	return nil
}

// HasConflict reports whether any non-deleted flight on the airplane
// overlaps the given window once padded by the schedule buffer on both
// ends. The caller passes the already padded bounds; two flights with a
// gap of exactly the buffer do not conflict. excludeID skips the flight
// being updated, pass 0 for creation.
func (r *FlightRepository) HasConflict(ctx context.Context, airplaneID uint, windowStart, windowEnd time.Time, excludeID uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("airplane_id = ? AND deleted = ?", airplaneID, false).
		Where("departure_time < ? AND arrival_time > ?", windowEnd, windowStart)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check schedule conflict: %w", err)
	}
	return count > 0, nil
}

// CountByAirplane counts every flight ever scheduled on the airplane,
// deleted ones included. Used by the conservative capacity-shrink guard.
func (r *FlightRepository) CountByAirplane(ctx context.Context, airplaneID uint) (int64, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("airplane_id = ?", airplaneID).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count flights: %w", err)
	}
	return count, nil
}

// HasFutureArrivals reports whether the airplane still has a non-deleted
// flight that has not arrived yet.
func (r *FlightRepository) HasFutureArrivals(ctx context.Context, airplaneID uint, now time.Time) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&gormModels.Flight{}).
		Where("airplane_id = ? AND deleted = ? AND arrival_time > ?", airplaneID, false, now).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check future arrivals: %w", err)
	}
	return count > 0, nil
}
