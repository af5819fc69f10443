package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db: db}
}

func (r *IncidentRepository) Create(ctx context.Context, incident *model.Incident) error {
	return r.db.WithContext(ctx).Create(incident).Error
}

func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Incident, error) {
	var incident model.Incident
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&incident).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &incident, nil
}

func (r *IncidentRepository) Update(ctx context.Context, incident *model.Incident) error {
	return r.db.WithContext(ctx).Save(incident).Error
}

func (r *IncidentRepository) List(ctx context.Context, driverID *uuid.UUID) ([]model.Incident, error) {
	var incidents []model.Incident
	query := r.db.WithContext(ctx)
	if driverID != nil {
		query = query.Where("driver_id = ?", *driverID)
	}
	err := query.Order("reported_at DESC").Find(&incidents).Error
	return incidents, err
}
