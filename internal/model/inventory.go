package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ItemName     string           `gorm:"type:varchar(255);not null" json:"item_name"`
	ItemCode     *string          `gorm:"type:varchar(64);uniqueIndex" json:"item_code"`
	Category     string           `gorm:"type:varchar(32);not null" json:"category"`
	CurrentStock int              `gorm:"not null;default:0" json:"current_stock"`
	MinimumStock int              `gorm:"not null;default:0" json:"minimum_stock"`
	MaxStock     *int             `json:"max_stock"`
	UnitPrice    *decimal.Decimal `gorm:"type:numeric(10,2)" json:"unit_price"`
	Location     *string          `gorm:"type:varchar(255)" json:"location"`
	Description  *string          `gorm:"type:text" json:"description"`
	IsActive     bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// LowOnStock reports whether an active item has fallen to its reorder level.
func (i InventoryItem) LowOnStock() bool {
	return i.IsActive && i.CurrentStock <= i.MinimumStock
}
