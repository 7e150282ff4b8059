package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageStatus string

const (
	PackageUpcoming PackageStatus = "upcoming"
	PackageActive   PackageStatus = "active"
	PackageExpired  PackageStatus = "expired"
)

type Package struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	Name         string    `gorm:"column:p_name;not null" json:"p_name"`
	Description  string    `json:"description"`
	Services     UUIDList  `gorm:"type:jsonb;default:'[]'" json:"services"`
	BasePrice    float64   `gorm:"type:decimal(10,2);not null" json:"base_price"`
	DiscountRate float64   `gorm:"type:decimal(5,2);default:0" json:"discount_rate"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`
	PackageType  string    `gorm:"not null" json:"package_type"`
	Category     string    `gorm:"not null" json:"category"`

	// Derived on every read, never stored.
	FinalPrice float64       `gorm:"-" json:"final_price"`
	Status     PackageStatus `gorm:"-" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Package) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
