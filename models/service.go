package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCodePrefix is the prefix of every canonical service identifier ("service42").
const ServiceCodePrefix = "service"

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	ServiceCode string    `gorm:"column:service_code;uniqueIndex;not null" json:"service_ID"`
	Category    string    `gorm:"not null" json:"category"`
	SubCategory string    `gorm:"not null" json:"subCategory"`
	Description string    `json:"description"`
	Duration    string    `gorm:"not null" json:"duration"` // e.g. "1h 30m"
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool      `gorm:"default:true" json:"available"`
	Image       string    `json:"image,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
