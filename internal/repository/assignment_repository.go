package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Reassign closes every active assignment of the driver and stores the new
// one in the same transaction.
func (r *AssignmentRepository) Reassign(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		err := tx.Model(&model.Assignment{}).
			Where("driver_id = ? AND is_active = ?", assignment.DriverID, true).
			Updates(map[string]interface{}{
				"is_active":     false,
				"unassigned_at": now,
			}).Error
		if err != nil {
			return err
		}
		return tx.Create(assignment).Error
	})
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&model.Assignment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":     false,
			"unassigned_at": now,
		}).Error
}

func (r *AssignmentRepository) List(ctx context.Context, activeOnly bool) ([]model.Assignment, error) {
	var assignments []model.Assignment
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("assigned_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) FindActiveByDriver(ctx context.Context, driverID uuid.UUID) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND is_active = ?", driverID, true).
		Order("assigned_at DESC").
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}
