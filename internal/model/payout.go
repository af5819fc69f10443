package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
	PayoutStatusPaid     PayoutStatus = "paid"
)

func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusRejected, PayoutStatusPaid:
		return true
	default:
		return false
	}
}

type Payout struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TripID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"trip_id"`
	DriverID         uuid.UUID        `gorm:"type:uuid;not null;index" json:"driver_id"`
	Revenue          decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"revenue"`
	CalculatedAmount decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"calculated_amount"`
	ApprovedAmount   *decimal.Decimal `gorm:"type:numeric(10,2)" json:"approved_amount"`
	Status           PayoutStatus     `gorm:"type:payout_status;not null;default:pending" json:"status"`
	ApprovedBy       *uuid.UUID       `gorm:"type:uuid" json:"approved_by"`
	ApprovedAt       *time.Time       `json:"approved_at"`
	Notes            *string          `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payout) TableName() string {
	return "payouts"
}

func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
