package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/lifecycle"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/anjiri1684/tour_marketplace/notifications"
)

// CheckForUnresolvedBookings finds confirmed bookings whose tour date has
// passed without the guide marking them complete and nudges the guide. The
// booking itself is not touched; only the guide can move it to COMPLETED.
func CheckForUnresolvedBookings() {
	log.Println("Running job: CheckForUnresolvedBookings...")

	today := lifecycle.Today(time.Now())

	var bookings []models.Booking
	err := database.DB.
		Preload("Guide").
		Preload("Tour").
		Where("status = ? AND booking_date < ?", string(lifecycle.StatusConfirmed), today).
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error checking for unresolved bookings: %v", err)
		return
	}

	if len(bookings) == 0 {
		log.Println("No unresolved bookings found.")
		return
	}

	for _, booking := range bookings {
		tag, err := lifecycle.Classify(toJobRecord(booking), today)
		if err != nil {
			log.Printf("🔥 Booking %s classification fallback: %v", booking.Reference, err)
			continue
		}
		if tag != lifecycle.TagPastUnresolved {
			continue
		}

		notifications.SendEmail(booking.Guide.FullName, booking.Guide.Email, "Action Needed: Unresolved Booking",
			fmt.Sprintf("<h1>Unresolved Booking</h1><p>Your tour <strong>%s</strong> (booking %s) ran on %s but has not been marked as completed. Please update it from your dashboard so the tourist can pay and review.</p>",
				booking.Tour.Title, booking.Reference, booking.BookingDate))
	}

	log.Printf("Nudged guides about %d unresolved booking(s).", len(bookings))
}

func toJobRecord(b models.Booking) lifecycle.Record {
	return lifecycle.Normalize(lifecycle.Record{
		ID:          b.ID.String(),
		Status:      lifecycle.Status(b.Status),
		BookingDate: b.BookingDate,
	})
}
