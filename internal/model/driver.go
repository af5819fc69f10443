package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Driver struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	EmployeeID        string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"employee_id"`
	PhoneNumber       *string    `gorm:"type:varchar(32)" json:"phone_number"`
	Address           *string    `gorm:"type:text" json:"address"`
	LicenseNumber     *string    `gorm:"type:varchar(64);uniqueIndex" json:"license_number"`
	LicenseExpiryDate *time.Time `json:"license_expiry_date"`
	DateOfBirth       *time.Time `json:"date_of_birth"`
	EmergencyContact  *string    `gorm:"type:varchar(255)" json:"emergency_contact"`
	IsActive          bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
