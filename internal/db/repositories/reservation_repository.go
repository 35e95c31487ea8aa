package repositories

import (
	"context"
	"fmt"

	gormModels "skyward/tower/internal/models/gorm"

	"gorm.io/gorm"
)

// ReservationRepository handles reservation table operations using GORM
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// GetByID retrieves a reservation by id regardless of its flags.
func (r *ReservationRepository) GetByID(ctx context.Context, id uint) (*gormModels.Reservation, error) {
	var res gormModels.Reservation

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&res).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}

	return &res, nil
}

// GetCurrent retrieves a non-deleted reservation by id.
func (r *ReservationRepository) GetCurrent(ctx context.Context, id uint) (*gormModels.Reservation, error) {
	var res gormModels.Reservation

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&res).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch reservation: %w", err)
	}

	return &res, nil
}

// CountActiveTx counts active reservations (status true, not deleted)
// on a flight inside the booking transaction. The per-flight lock must
// already be held when this runs. excludeID leaves one reservation out
// of the count, used when an update re-activates it; pass 0 otherwise.
func (r *ReservationRepository) CountActiveTx(tx *gorm.DB, flightID uint, excludeID uint) (int64, error) {
	q := tx.Model(&gormModels.Reservation{}).
		Where("flight_id = ? AND status = ? AND deleted = ?", flightID, true, false)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}
	return count, nil
}

// HasActiveByFlight reports whether the flight carries any active
// reservation. Gating check for flight soft-deletion.
func (r *ReservationRepository) HasActiveByFlight(ctx context.Context, flightID uint) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&gormModels.Reservation{}).
		Where("flight_id = ? AND status = ? AND deleted = ?", flightID, true, false).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check active reservations: %w", err)
	}
	return count > 0, nil
}

// UpdateFields writes only the supplied columns.
func (r *ReservationRepository) UpdateFields(ctx context.Context, id uint, changes map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Reservation{}).
		Where("id = ?", id).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reservation not found with ID: %d", id)
	}
	return nil
}

// UpdateFieldsTx is UpdateFields inside an existing transaction.
func (r *ReservationRepository) UpdateFieldsTx(tx *gorm.DB, id uint, changes map[string]any) error {
	result := tx.Model(&gormModels.Reservation{}).
		Where("id = ?", id).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("reservation not found with ID: %d", id)
	}
	return nil
}
