package models

import (
	"time"

	"github.com/google/uuid"
)

type PayoutRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GuideID     uuid.UUID  `gorm:"not null" json:"guide_id"`
	Amount      float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	AdminNotes  *string    `gorm:"type:text" json:"admin_notes"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ProcessedAt *time.Time `json:"processed_at"`

	Guide User `gorm:"foreignkey:GuideID" json:"guide,omitempty"`
}
