package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Incident struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	TripID       *uuid.UUID       `gorm:"type:uuid" json:"trip_id"`
	DriverID     *uuid.UUID       `gorm:"type:uuid" json:"driver_id"`
	VehicleID    *uuid.UUID       `gorm:"type:uuid" json:"vehicle_id"`
	IncidentType string           `gorm:"type:varchar(64);not null" json:"incident_type"`
	Description  string           `gorm:"type:text;not null" json:"description"`
	DamageAmount *decimal.Decimal `gorm:"type:numeric(10,2)" json:"damage_amount"`
	ReportedAt   time.Time        `gorm:"not null;default:now()" json:"reported_at"`
	ResolvedAt   *time.Time       `json:"resolved_at"`
	IsResolved   bool             `gorm:"not null;default:false" json:"is_resolved"`
}

func (Incident) TableName() string {
	return "incidents"
}

func (i *Incident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.ReportedAt.IsZero() {
		i.ReportedAt = time.Now()
	}
	return nil
}
