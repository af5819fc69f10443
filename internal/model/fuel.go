package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FuelRecordType string

const (
	FuelRecordRefuel       FuelRecordType = "refuel"
	FuelRecordDistribution FuelRecordType = "distribution"
	FuelRecordTransfer     FuelRecordType = "transfer"
)

func (t FuelRecordType) Valid() bool {
	switch t {
	case FuelRecordRefuel, FuelRecordDistribution, FuelRecordTransfer:
		return true
	default:
		return false
	}
}

type FuelStation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Location        string    `gorm:"type:text;not null" json:"location"`
	ContactPerson   *string   `gorm:"type:varchar(255)" json:"contact_person"`
	Phone           *string   `gorm:"type:varchar(32)" json:"phone"`
	ContractDetails *string   `gorm:"type:text" json:"contract_details"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FuelStation) TableName() string {
	return "fuel_stations"
}

func (s *FuelStation) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type FuelRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	VehicleID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	DriverID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"driver_id"`
	FuelStationID   *uuid.UUID      `gorm:"type:uuid" json:"fuel_station_id"`
	RecordType      FuelRecordType  `gorm:"type:fuel_record_type;not null" json:"record_type"`
	FuelType        string          `gorm:"type:varchar(32);not null" json:"fuel_type"`
	Quantity        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"quantity"`
	PricePerLiter   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_per_liter"`
	TotalCost       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_cost"`
	OdometerReading *int            `json:"odometer_reading"`
	ReceiptNumber   *string         `gorm:"type:varchar(64)" json:"receipt_number"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	RefuelDate      time.Time       `gorm:"not null;default:now()" json:"refuel_date"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (FuelRecord) TableName() string {
	return "fuel_records"
}

func (r *FuelRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RefuelDate.IsZero() {
		r.RefuelDate = time.Now()
	}
	return nil
}
