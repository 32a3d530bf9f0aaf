package models

import (
	"time"

	"github.com/google/uuid"
)

type Tour struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GuideID       uuid.UUID `gorm:"not null" json:"guide_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"type:text" json:"description"`
	Location      string    `gorm:"size:255;not null" json:"location"`
	Fee           float64   `gorm:"type:numeric(10,2);not null" json:"fee"`
	Currency      string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	DurationHours int       `gorm:"not null;default:1" json:"duration_hours"`
	MaxGroupSize  int       `gorm:"not null;default:1" json:"max_group_size"`
	Images        []string  `gorm:"serializer:json;type:jsonb" json:"images"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	Guide User `gorm:"foreignkey:GuideID" json:"guide,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
