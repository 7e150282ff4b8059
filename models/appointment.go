package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	AppointmentProcessing AppointmentStatus = "Processing"
	AppointmentPending    AppointmentStatus = "Pending"
	AppointmentConfirmed  AppointmentStatus = "Confirmed"
	AppointmentCompleted  AppointmentStatus = "Completed"
	AppointmentCancelled  AppointmentStatus = "Cancelled"
)

type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"_id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ClientName  string    `gorm:"not null" json:"client_name"`
	ClientEmail string    `gorm:"not null" json:"client_email"`
	ClientPhone string    `gorm:"type:varchar(10);not null" json:"client_phone"`
	Stylist     string    `gorm:"not null" json:"stylist"`

	Services         DelimitedList `gorm:"type:text;not null" json:"services"`
	PackageID        *uuid.UUID    `gorm:"type:uuid" json:"packages,omitempty"`
	CustomizePackage string        `json:"customize_package,omitempty"`

	Date   time.Time         `gorm:"column:appoi_date;type:date;not null" json:"appoi_date"`
	Time   string            `gorm:"column:appoi_time;type:varchar(5);not null" json:"appoi_time"` // HH:MM
	Status AppointmentStatus `gorm:"type:varchar(20);default:'Processing'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
