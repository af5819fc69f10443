package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-service/internal/model"
)

// DashboardStats is the aggregate shown on the staff dashboard.
type DashboardStats struct {
	ActiveDrivers  int64           `json:"activeDrivers"`
	FleetSize      int64           `json:"fleetSize"`
	DailyRevenue   decimal.Decimal `json:"dailyRevenue"`
	PendingPayouts decimal.Decimal `json:"pendingPayouts"`
}

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Dashboard computes the stats; revenue counts trips created at or after since.
func (r *StatsRepository) Dashboard(ctx context.Context, since time.Time) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	var stats DashboardStats

	if err := db.Model(&model.Driver{}).Where("is_active = ?", true).Count(&stats.ActiveDrivers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Vehicle{}).Where("status = ?", model.VehicleStatusActive).Count(&stats.FleetSize).Error; err != nil {
		return nil, err
	}
	err := db.Model(&model.Trip{}).
		Select("COALESCE(SUM(revenue), 0)").
		Where("created_at >= ?", since).
		Row().Scan(&stats.DailyRevenue)
	if err != nil {
		return nil, err
	}
	err = db.Model(&model.Payout{}).
		Select("COALESCE(SUM(calculated_amount), 0)").
		Where("status = ?", model.PayoutStatusPending).
		Row().Scan(&stats.PendingPayouts)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
