package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type MaintenanceRepository struct {
	db *gorm.DB
}

func NewMaintenanceRepository(db *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, record *model.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *MaintenanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MaintenanceRecord, error) {
	var record model.MaintenanceRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, record *model.MaintenanceRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *MaintenanceRepository) List(ctx context.Context, vehicleID *uuid.UUID) ([]model.MaintenanceRecord, error) {
	var records []model.MaintenanceRecord
	query := r.db.WithContext(ctx)
	if vehicleID != nil {
		query = query.Where("vehicle_id = ?", *vehicleID)
	}
	err := query.Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *MaintenanceRepository) CreateTask(ctx context.Context, task *model.MaintenanceTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *MaintenanceRepository) GetTask(ctx context.Context, id uuid.UUID) (*model.MaintenanceTask, error) {
	var task model.MaintenanceTask
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *MaintenanceRepository) UpdateTask(ctx context.Context, task *model.MaintenanceTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *MaintenanceRepository) ListTasks(ctx context.Context, recordID uuid.UUID) ([]model.MaintenanceTask, error) {
	var tasks []model.MaintenanceTask
	err := r.db.WithContext(ctx).
		Where("maintenance_record_id = ?", recordID).
		Order("task_name ASC").
		Find(&tasks).Error
	return tasks, err
}
