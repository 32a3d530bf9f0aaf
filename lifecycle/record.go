package lifecycle

import "time"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

type PaymentStatus string

const (
	PaymentUnpaid    PaymentStatus = "UNPAID"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type Role string

const (
	RoleTourist Role = "tourist"
	RoleGuide   Role = "guide"
	RoleAdmin   Role = "admin"
)

// TourSnapshot is the denormalized tour view carried on a booking record.
type TourSnapshot struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Location      string   `json:"location"`
	Images        []string `json:"images"`
	Fee           float64  `json:"fee"`
	DurationHours int      `json:"duration_hours"`
}

// Party is the other side of a booking: the tourist sees the guide, the
// guide sees the tourist.
type Party struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type PaymentInfo struct {
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id,omitempty"`
	Amount        float64       `json:"amount,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}

// Record is a booking as the rest of the system consumes it. Status and
// Payment.Status are independent axes set by the backend; nothing in this
// package ever mutates them outside of Normalize filling in defaults.
type Record struct {
	ID             string        `json:"id"`
	Status         Status        `json:"status"`
	BookingDate    string        `json:"booking_date"` // YYYY-MM-DD
	BookingTime    string        `json:"booking_time"`
	NumberOfGuests int           `json:"number_of_guests"`
	TotalAmount    float64       `json:"total_amount"`
	Tour           *TourSnapshot `json:"tour"`
	Counterpart    *Party        `json:"counterpart"`
	Payment        *PaymentInfo  `json:"payment"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// Normalize fills the optional sub-records with defaults so callers never
// branch on presence. A missing payment means the booking is unpaid. Total:
// never fails, and Normalize(Normalize(r)) == Normalize(r).
func Normalize(rec Record) Record {
	if rec.Tour == nil {
		rec.Tour = &TourSnapshot{}
	}
	if rec.Tour.Images == nil {
		rec.Tour.Images = []string{}
	}
	if rec.Counterpart == nil {
		rec.Counterpart = &Party{}
	}
	if rec.Payment == nil {
		rec.Payment = &PaymentInfo{Status: PaymentUnpaid}
	} else if rec.Payment.Status == "" {
		p := *rec.Payment
		p.Status = PaymentUnpaid
		rec.Payment = &p
	}
	return rec
}
