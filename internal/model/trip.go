package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusPending   TripStatus = "pending"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

type Trip struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DriverID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"driver_id"`
	VehicleID      uuid.UUID        `gorm:"type:uuid;not null" json:"vehicle_id"`
	PickupLocation string           `gorm:"type:text;not null" json:"pickup_location"`
	DropLocation   string           `gorm:"type:text;not null" json:"drop_location"`
	Distance       *decimal.Decimal `gorm:"type:numeric(10,2)" json:"distance"`
	Revenue        decimal.Decimal  `gorm:"type:numeric(10,2);not null" json:"revenue"`
	StartTime      *time.Time       `json:"start_time"`
	EndTime        *time.Time       `json:"end_time"`
	Status         TripStatus       `gorm:"type:trip_status;not null;default:pending" json:"status"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
