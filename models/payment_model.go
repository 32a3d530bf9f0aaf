package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID         *uuid.UUID `gorm:"unique" json:"booking_id"`
	Amount            float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency          string     `gorm:"size:3" json:"currency"`
	Provider          string     `gorm:"size:50;not null" json:"provider"`
	Status            string     `gorm:"size:20;not null;default:'UNPAID'" json:"status"`
	ProviderTxnID     *string    `gorm:"size:255;unique" json:"transaction_id"`
	ProviderOrderID   *string    `gorm:"size:255;unique" json:"-"`
	MerchantRequestID *string    `gorm:"size:255;unique" json:"-"`
	PaidAt            *time.Time `json:"paid_at"`

	RefundStatus *string `gorm:"size:20" json:"refund_status"`
	RefundReason *string `gorm:"type:text" json:"refund_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
