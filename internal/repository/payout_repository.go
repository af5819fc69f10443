package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

type PayoutListFilter struct {
	DriverID *uuid.UUID
	Status   *model.PayoutStatus
}

type PayoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) *PayoutRepository {
	return &PayoutRepository{db: db}
}

func (r *PayoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Payout, error) {
	var payout model.Payout
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&payout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &payout, nil
}

func (r *PayoutRepository) List(ctx context.Context, filter PayoutListFilter) ([]model.Payout, error) {
	var payouts []model.Payout
	query := r.db.WithContext(ctx)
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	err := query.Order("created_at DESC").Find(&payouts).Error
	return payouts, err
}

// UpdateFromStatus writes the payout only while its stored status still
// equals from. It reports false when another writer moved it first.
func (r *PayoutRepository) UpdateFromStatus(ctx context.Context, payout *model.Payout, from model.PayoutStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Payout{}).
		Where("id = ? AND status = ?", payout.ID, from).
		Updates(map[string]interface{}{
			"status":          payout.Status,
			"approved_amount": payout.ApprovedAmount,
			"approved_by":     payout.ApprovedBy,
			"approved_at":     payout.ApprovedAt,
			"notes":           payout.Notes,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
