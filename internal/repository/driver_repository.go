package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *DriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &driver, nil
}

// GetByUserID returns nil without error when the user has no driver profile.
func (r *DriverRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&driver).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

func (r *DriverRepository) Update(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Save(driver).Error
}

func (r *DriverRepository) List(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&drivers).Error
	return drivers, err
}
