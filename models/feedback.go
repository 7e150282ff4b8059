package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "pending"
	FeedbackApproved FeedbackStatus = "approved"
	FeedbackDeclined FeedbackStatus = "declined"
)

type Feedback struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"_id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	ServiceRef    string         `gorm:"column:service_ref;not null" json:"serviceID"` // stored in several historical formats
	Message       string         `gorm:"type:text;not null" json:"message"`
	StarRating    int            `gorm:"not null" json:"star_rating"`
	DateOfService time.Time      `gorm:"type:date;not null" json:"date_of_service"`
	Status        FeedbackStatus `gorm:"type:varchar(20);index;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}
