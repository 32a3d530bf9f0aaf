package utils

import (
	"math/rand"
	"time"

	"github.com/anjiri1684/tour_marketplace/models"
	"gorm.io/gorm"
)

const bookingRefLength = 8
const letterBytes = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateBookingReference returns a short uppercase code no other booking
// uses, for emails and support lookups. Ambiguous characters (0/O, 1/I/L)
// are excluded from the alphabet.
func GenerateBookingReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, bookingRefLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := string(b)

		var booking models.Booking
		err := tx.Where("reference = ?", code).First(&booking).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
