package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type FuelRecordFilter struct {
	DriverID  *uuid.UUID
	VehicleID *uuid.UUID
}

type FuelRepository struct {
	db *gorm.DB
}

func NewFuelRepository(db *gorm.DB) *FuelRepository {
	return &FuelRepository{db: db}
}

func (r *FuelRepository) CreateStation(ctx context.Context, station *model.FuelStation) error {
	return r.db.WithContext(ctx).Create(station).Error
}

func (r *FuelRepository) GetStation(ctx context.Context, id uuid.UUID) (*model.FuelStation, error) {
	var station model.FuelStation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&station).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &station, nil
}

func (r *FuelRepository) UpdateStation(ctx context.Context, station *model.FuelStation) error {
	return r.db.WithContext(ctx).Save(station).Error
}

func (r *FuelRepository) ListStations(ctx context.Context) ([]model.FuelStation, error) {
	var stations []model.FuelStation
	err := r.db.WithContext(ctx).Order("name ASC").Find(&stations).Error
	return stations, err
}

func (r *FuelRepository) CreateRecord(ctx context.Context, record *model.FuelRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *FuelRepository) ListRecords(ctx context.Context, filter FuelRecordFilter) ([]model.FuelRecord, error) {
	var records []model.FuelRecord
	query := r.db.WithContext(ctx)
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}
	err := query.Order("refuel_date DESC").Find(&records).Error
	return records, err
}
