package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentEntityType string

const (
	DocumentEntityDriver      DocumentEntityType = "driver"
	DocumentEntityVehicle     DocumentEntityType = "vehicle"
	DocumentEntityTrip        DocumentEntityType = "trip"
	DocumentEntityFuelRecord  DocumentEntityType = "fuel_record"
	DocumentEntityChecklist   DocumentEntityType = "checklist"
	DocumentEntityMaintenance DocumentEntityType = "maintenance"
	DocumentEntityIncident    DocumentEntityType = "incident"
)

func (t DocumentEntityType) Valid() bool {
	switch t {
	case DocumentEntityDriver, DocumentEntityVehicle, DocumentEntityTrip, DocumentEntityFuelRecord,
		DocumentEntityChecklist, DocumentEntityMaintenance, DocumentEntityIncident:
		return true
	default:
		return false
	}
}

// Document is a stored file attached to another record by (EntityID, EntityType).
// FilePath holds the storage location, never a public URL.
type Document struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EntityID     uuid.UUID          `gorm:"type:uuid;not null" json:"entity_id"`
	EntityType   DocumentEntityType `gorm:"type:varchar(32);not null" json:"entity_type"`
	DocumentType string             `gorm:"type:varchar(64);not null" json:"document_type"`
	FileName     string             `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath     string             `gorm:"type:text;not null" json:"-"`
	FileSize     int64              `json:"file_size"`
	ContentType  string             `gorm:"type:varchar(128)" json:"content_type"`
	UploadedBy   *uuid.UUID         `gorm:"type:uuid" json:"uploaded_by"`
	UploadedAt   time.Time          `gorm:"not null;default:now()" json:"uploaded_at"`
	ExpiryDate   *time.Time         `json:"expiry_date"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now()
	}
	return nil
}
