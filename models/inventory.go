package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InventoryItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	ItemName      string    `gorm:"not null" json:"ItemName"`
	Category      string    `gorm:"not null" json:"Category"`
	Quantity      int       `gorm:"not null;default:0" json:"Quantity"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"Price"`
	SupplierName  string    `gorm:"not null" json:"SupplierName"`
	SupplierEmail string    `gorm:"not null" json:"SupplierEmail"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// LowStockAlert is derived from the current inventory snapshot and never stored.
type LowStockAlert struct {
	ItemID    uuid.UUID `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Quantity  int       `json:"quantity"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}
