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

// SendTourReminders emails both parties of every confirmed booking that runs
// tomorrow.
func SendTourReminders() {
	log.Println("Running job: SendTourReminders...")

	tomorrow := lifecycle.Today(time.Now().AddDate(0, 0, 1))

	var upcomingBookings []models.Booking
	err := database.DB.
		Preload("Tourist").
		Preload("Guide").
		Preload("Tour").
		Where("status = ? AND booking_date = ?", string(lifecycle.StatusConfirmed), tomorrow).
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming tours: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking %s", booking.Reference)

		emailSubject := "Reminder: Your Tour is Tomorrow!"
		emailBody := fmt.Sprintf(
			"<h1>Tour Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that <strong>%s</strong> in %s runs tomorrow (%s %s). Booking reference: %s.</p>",
			booking.Tour.Title,
			booking.Tour.Location,
			booking.BookingDate,
			booking.BookingTime,
			booking.Reference,
		)

		go notifications.SendEmail(booking.Tourist.FullName, booking.Tourist.Email, emailSubject, emailBody)
		go notifications.SendEmail(booking.Guide.FullName, booking.Guide.Email, emailSubject, emailBody)
	}
}
