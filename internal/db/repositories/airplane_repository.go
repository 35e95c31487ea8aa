package repositories

import (
	"context"
	"fmt"

	gormModels "skyward/tower/internal/models/gorm"

	"gorm.io/gorm"
)

// AirplaneRepository handles airplane table operations using GORM
type AirplaneRepository struct {
	db *gorm.DB
}

func NewAirplaneRepository(db *gorm.DB) *AirplaneRepository {
	return &AirplaneRepository{db: db}
}

// GetByID retrieves an airplane by id regardless of its flags.
func (r *AirplaneRepository) GetByID(ctx context.Context, id uint) (*gormModels.Airplane, error) {
	var airplane gormModels.Airplane

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&airplane).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airplane: %w", err)
	}

	return &airplane, nil
}

// GetCurrent retrieves a non-deleted airplane by id.
func (r *AirplaneRepository) GetCurrent(ctx context.Context, id uint) (*gormModels.Airplane, error) {
	var airplane gormModels.Airplane

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, false).
		First(&airplane).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airplane: %w", err)
	}

	return &airplane, nil
}

// GetAvailable retrieves an airplane that can still take new flights:
// not deleted and active.
func (r *AirplaneRepository) GetAvailable(ctx context.Context, id uint) (*gormModels.Airplane, error) {
	var airplane gormModels.Airplane

	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ? AND status = ?", id, false, true).
		First(&airplane).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch airplane: %w", err)
	}

	return &airplane, nil
}

func (r *AirplaneRepository) Create(ctx context.Context, airplane *gormModels.Airplane) error {
	if err := r.db.WithContext(ctx).Create(airplane).Error; err != nil {
		return fmt.Errorf("failed to create airplane: %w", err)
	}
	return nil
}

// UpdateFields writes only the supplied columns.
func (r *AirplaneRepository) UpdateFields(ctx context.Context, id uint, changes map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&gormModels.Airplane{}).
		Where("id = ?", id).
		Updates(changes)

	if result.Error != nil {
		return fmt.Errorf("failed to update airplane: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("airplane not found with ID: %d", id)
	}
	return nil
}
