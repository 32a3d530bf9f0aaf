package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"not null;unique" json:"booking_id"`
	TourID    uuid.UUID `gorm:"not null" json:"tour_id"`
	TouristID uuid.UUID `gorm:"not null" json:"tourist_id"`
	GuideID   uuid.UUID `gorm:"not null" json:"guide_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"-"`
	Tourist User    `gorm:"foreignkey:TouristID" json:"tourist,omitempty"`
	Guide   User    `gorm:"foreignkey:GuideID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
