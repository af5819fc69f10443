package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCancelled  MaintenanceStatus = "cancelled"
)

func (s MaintenanceStatus) Valid() bool {
	switch s {
	case MaintenanceStatusScheduled, MaintenanceStatusInProgress, MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return true
	default:
		return false
	}
}

type MaintenanceRecord struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VehicleID       uuid.UUID         `gorm:"type:uuid;not null" json:"vehicle_id"`
	MaintenanceType string            `gorm:"type:varchar(32);not null" json:"maintenance_type"`
	Description     string            `gorm:"type:text;not null" json:"description"`
	Status          MaintenanceStatus `gorm:"type:maintenance_status;not null;default:scheduled" json:"status"`
	ScheduledDate   *time.Time        `json:"scheduled_date"`
	CompletedDate   *time.Time        `json:"completed_date"`
	Cost            *decimal.Decimal  `gorm:"type:numeric(10,2)" json:"cost"`
	ServiceProvider *string           `gorm:"type:varchar(255)" json:"service_provider"`
	OdometerReading *int              `json:"odometer_reading"`
	NextServiceDue  *time.Time        `json:"next_service_due"`
	Notes           *string           `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MaintenanceRecord) TableName() string {
	return "maintenance_records"
}

func (m *MaintenanceRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type MaintenanceTask struct {
	ID                  uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MaintenanceRecordID uuid.UUID        `gorm:"type:uuid;not null;index" json:"maintenance_record_id"`
	TaskName            string           `gorm:"type:varchar(255);not null" json:"task_name"`
	Description         *string          `gorm:"type:text" json:"description"`
	IsCompleted         bool             `gorm:"not null;default:false" json:"is_completed"`
	AssignedTo          *string          `gorm:"type:varchar(255)" json:"assigned_to"`
	CompletedBy         *string          `gorm:"type:varchar(255)" json:"completed_by"`
	EstimatedDuration   *int             `json:"estimated_duration"` // minutes
	ActualDuration      *int             `json:"actual_duration"`    // minutes
	PartsUsed           *string          `gorm:"type:text" json:"parts_used"`
	Cost                *decimal.Decimal `gorm:"type:numeric(10,2)" json:"cost"`
}

func (MaintenanceTask) TableName() string {
	return "maintenance_tasks"
}

func (t *MaintenanceTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
