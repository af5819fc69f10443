package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

// CreateWithPayout stores a trip and its payout atomically. The payout's
// TripID is filled from the stored trip.
func (r *TripRepository) CreateWithPayout(ctx context.Context, trip *model.Trip, payout *model.Payout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		payout.TripID = trip.ID
		return tx.Create(payout).Error
	})
}

func (r *TripRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trip, error) {
	var trip model.Trip
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&trip).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) List(ctx context.Context, driverID *uuid.UUID) ([]model.Trip, error) {
	var trips []model.Trip
	query := r.db.WithContext(ctx)
	if driverID != nil {
		query = query.Where("driver_id = ?", *driverID)
	}
	err := query.Order("created_at DESC").Find(&trips).Error
	return trips, err
}
