package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Assignment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DriverID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"driver_id"`
	VehicleID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	AssignedAt   time.Time  `gorm:"not null;default:now()" json:"assigned_at"`
	UnassignedAt *time.Time `json:"unassigned_at"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	return nil
}
