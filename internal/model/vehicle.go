package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusInactive    VehicleStatus = "inactive"
)

func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusActive, VehicleStatusMaintenance, VehicleStatusInactive:
		return true
	default:
		return false
	}
}

type Vehicle struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RegistrationNumber  string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"registration_number"`
	Make                string        `gorm:"type:varchar(128);not null" json:"make"`
	Model               string        `gorm:"type:varchar(128);not null" json:"model"`
	Year                *int          `json:"year"`
	Capacity            *int          `json:"capacity"`
	FuelType            *string       `gorm:"type:varchar(32)" json:"fuel_type"`
	InsuranceNumber     *string       `gorm:"type:varchar(64)" json:"insurance_number"`
	InsuranceExpiryDate *time.Time    `json:"insurance_expiry_date"`
	PermitNumber        *string       `gorm:"type:varchar(64)" json:"permit_number"`
	PermitExpiryDate    *time.Time    `json:"permit_expiry_date"`
	Status              VehicleStatus `gorm:"type:vehicle_status;not null;default:active" json:"status"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
