package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Reference string    `gorm:"size:12;not null;unique" json:"reference"`
	TouristID uuid.UUID `gorm:"not null" json:"tourist_id"`
	GuideID   uuid.UUID `gorm:"not null" json:"guide_id"`
	TourID    uuid.UUID `gorm:"not null" json:"tour_id"`

	// Calendar date the tour runs, YYYY-MM-DD. BookingTime is display only.
	BookingDate    string  `gorm:"size:10;not null" json:"booking_date"`
	BookingTime    string  `gorm:"size:20" json:"booking_time"`
	NumberOfGuests int     `gorm:"not null;default:1" json:"number_of_guests"`
	TotalAmount    float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Currency       string  `gorm:"size:3" json:"currency"`
	Status         string  `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	GuideNote  *string `gorm:"type:text" json:"guide_note"`
	VoucherURL *string `gorm:"type:text" json:"voucher_url"`

	Tourist User    `gorm:"foreignkey:TouristID" json:"tourist,omitempty"`
	Guide   User    `gorm:"foreignkey:GuideID" json:"guide,omitempty"`
	Tour    Tour    `gorm:"foreignkey:TourID" json:"tour,omitempty"`
	Payment Payment `gorm:"foreignkey:BookingID" json:"payment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
