package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChecklistStatus string

const (
	ChecklistStatusPending   ChecklistStatus = "pending"
	ChecklistStatusCompleted ChecklistStatus = "completed"
	ChecklistStatusFailed    ChecklistStatus = "failed"
)

func (s ChecklistStatus) Valid() bool {
	switch s {
	case ChecklistStatusPending, ChecklistStatusCompleted, ChecklistStatusFailed:
		return true
	default:
		return false
	}
}

// Checklist types: pre_trip, post_trip, inventory, maintenance.
type DriverChecklist struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DriverID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"driver_id"`
	VehicleID     uuid.UUID       `gorm:"type:uuid;not null" json:"vehicle_id"`
	ChecklistType string          `gorm:"type:varchar(32);not null" json:"checklist_type"`
	Status        ChecklistStatus `gorm:"type:checklist_status;not null;default:pending" json:"status"`
	CompletedAt   *time.Time      `json:"completed_at"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (DriverChecklist) TableName() string {
	return "driver_checklists"
}

func (c *DriverChecklist) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type ChecklistItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ChecklistID  uuid.UUID `gorm:"type:uuid;not null;index" json:"checklist_id"`
	ItemName     string    `gorm:"type:varchar(255);not null" json:"item_name"`
	ItemCategory string    `gorm:"type:varchar(32);not null" json:"item_category"`
	IsChecked    bool      `gorm:"not null;default:false" json:"is_checked"`
	Condition    *string   `gorm:"type:varchar(32)" json:"condition"`
	Quantity     *int      `json:"quantity"`
	Notes        *string   `gorm:"type:text" json:"notes"`
	ImageURL     *string   `gorm:"type:text" json:"image_url"`
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}

func (i *ChecklistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
