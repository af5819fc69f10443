package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type ChecklistRepository struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) Create(ctx context.Context, checklist *model.DriverChecklist) error {
	return r.db.WithContext(ctx).Create(checklist).Error
}

func (r *ChecklistRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DriverChecklist, error) {
	var checklist model.DriverChecklist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&checklist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &checklist, nil
}

func (r *ChecklistRepository) Update(ctx context.Context, checklist *model.DriverChecklist) error {
	return r.db.WithContext(ctx).Save(checklist).Error
}

func (r *ChecklistRepository) List(ctx context.Context, driverID *uuid.UUID) ([]model.DriverChecklist, error) {
	var checklists []model.DriverChecklist
	query := r.db.WithContext(ctx)
	if driverID != nil {
		query = query.Where("driver_id = ?", *driverID)
	}
	err := query.Order("created_at DESC").Find(&checklists).Error
	return checklists, err
}

func (r *ChecklistRepository) CreateItem(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ChecklistRepository) GetItem(ctx context.Context, id uuid.UUID) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ChecklistRepository) UpdateItem(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ChecklistRepository) ListItems(ctx context.Context, checklistID uuid.UUID) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := r.db.WithContext(ctx).
		Where("checklist_id = ?", checklistID).
		Order("item_category ASC, item_name ASC").
		Find(&items).Error
	return items, err
}
