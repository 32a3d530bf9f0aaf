package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/lifecycle"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/anjiri1684/tour_marketplace/notifications"
	"github.com/anjiri1684/tour_marketplace/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	TourID         string `json:"tour_id" validate:"required,uuid"`
	BookingDate    string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime    string `json:"booking_time"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
}

// toRecord converts a preloaded booking row into the shape the lifecycle
// package classifies. The counterpart depends on who is looking: tourists
// see the guide, guides see the tourist. A zero payment row means no payment
// was ever created; Normalize treats that as unpaid.
func toRecord(b models.Booking, role lifecycle.Role) lifecycle.Record {
	rec := lifecycle.Record{
		ID:             b.ID.String(),
		Status:         lifecycle.Status(b.Status),
		BookingDate:    b.BookingDate,
		BookingTime:    b.BookingTime,
		NumberOfGuests: b.NumberOfGuests,
		TotalAmount:    b.TotalAmount,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.Tour.ID != uuid.Nil {
		rec.Tour = &lifecycle.TourSnapshot{
			ID:            b.Tour.ID.String(),
			Title:         b.Tour.Title,
			Location:      b.Tour.Location,
			Images:        b.Tour.Images,
			Fee:           b.Tour.Fee,
			DurationHours: b.Tour.DurationHours,
		}
	}

	other := b.Guide
	if role == lifecycle.RoleGuide {
		other = b.Tourist
	}
	if other.ID != uuid.Nil {
		party := &lifecycle.Party{
			ID:       other.ID.String(),
			FullName: other.FullName,
			Email:    other.Email,
		}
		if other.Phone != nil {
			party.Phone = *other.Phone
		}
		if other.ProfilePictureURL != nil {
			party.ProfilePictureURL = *other.ProfilePictureURL
		}
		rec.Counterpart = party
	}

	if b.Payment.ID != uuid.Nil {
		info := &lifecycle.PaymentInfo{
			Status: lifecycle.PaymentStatus(b.Payment.Status),
			Amount: b.Payment.Amount,
			PaidAt: b.Payment.PaidAt,
		}
		if b.Payment.ProviderTxnID != nil {
			info.TransactionID = *b.Payment.ProviderTxnID
		}
		rec.Payment = info
	}

	return lifecycle.Normalize(rec)
}

func hasReviewFor(bookingID uuid.UUID) bool {
	var count int64
	database.DB.Model(&models.Review{}).Where("booking_id = ?", bookingID).Count(&count)
	return count > 0
}

func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tourID, _ := uuid.Parse(req.TourID)

	var tour models.Tour
	if err := database.DB.Preload("Guide").First(&tour, "id = ? AND is_active = ?", tourID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tour not found"})
	}
	if tour.GuideID == touristID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot book your own tour"})
	}
	if req.NumberOfGuests > tour.MaxGroupSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("This tour takes at most %d guests", tour.MaxGroupSize),
		})
	}
	if req.BookingDate < lifecycle.Today(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Booking date cannot be in the past"})
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		reference, err := utils.GenerateBookingReference(tx)
		if err != nil {
			return errors.New("failed to generate booking reference")
		}

		booking = models.Booking{
			Reference:      reference,
			TouristID:      touristID,
			GuideID:        tour.GuideID,
			TourID:         tour.ID,
			BookingDate:    req.BookingDate,
			BookingTime:    req.BookingTime,
			NumberOfGuests: req.NumberOfGuests,
			TotalAmount:    tour.Fee * float64(req.NumberOfGuests),
			Currency:       tour.Currency,
			Status:         string(lifecycle.StatusPending),
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	go notifications.SendEmail(tour.Guide.FullName, tour.Guide.Email, "New Booking Request",
		fmt.Sprintf("<h1>New Booking Request</h1><p>A tourist has requested to book <strong>%s</strong> on %s. Please confirm or decline from your dashboard.</p>", tour.Title, booking.BookingDate))

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings lists the tourist's bookings. With ?bucket= it returns only
// the classification bucket the client asks for, so pages never filter by
// hand.
func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID := claims["user_id"].(string)

	var bookings []models.Booking
	database.DB.
		Preload("Guide").
		Preload("Tour").
		Preload("Payment").
		Where("tourist_id = ?", touristID).
		Order("booking_date desc").
		Find(&bookings)

	return respondWithRecords(c, bookings, lifecycle.RoleTourist)
}

func GetGuideBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID := claims["user_id"].(string)

	var bookings []models.Booking
	database.DB.
		Preload("Tourist").
		Preload("Tour").
		Preload("Payment").
		Where("guide_id = ?", guideID).
		Order("booking_date desc").
		Find(&bookings)

	return respondWithRecords(c, bookings, lifecycle.RoleGuide)
}

// GetPendingGuideBookings is the guide's confirmation queue.
func GetPendingGuideBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID := claims["user_id"].(string)

	var bookings []models.Booking
	database.DB.
		Preload("Tourist").
		Preload("Tour").
		Preload("Payment").
		Where("guide_id = ? AND status = ?", guideID, string(lifecycle.StatusPending)).
		Order("booking_date asc").
		Find(&bookings)

	records := make([]lifecycle.Record, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, toRecord(b, lifecycle.RoleGuide))
	}
	return c.JSON(records)
}

func respondWithRecords(c *fiber.Ctx, bookings []models.Booking, role lifecycle.Role) error {
	today := lifecycle.Today(time.Now())

	records := make([]lifecycle.Record, 0, len(bookings))
	for _, b := range bookings {
		rec := toRecord(b, role)
		if _, err := lifecycle.Classify(rec, today); err != nil {
			log.Printf("🔥 Booking %s classification fallback: %v", b.Reference, err)
		}
		records = append(records, rec)
	}

	if bucket := c.Query("bucket"); bucket != "" {
		tag, ok := lifecycle.ParseTag(bucket)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown bucket: " + bucket})
		}
		return c.JSON(lifecycle.Bucket(records, tag, today))
	}

	return c.JSON(records)
}

func GetBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.
		Preload("Tourist").Preload("Guide").Preload("Tour").Preload("Payment").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	role := lifecycle.RoleTourist
	switch userID {
	case booking.TouristID.String():
	case booking.GuideID.String():
		role = lifecycle.RoleGuide
	default:
		if claims["role"].(string) != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
		}
	}

	return c.JSON(toRecord(booking, role))
}

// GetBookingActions exposes the permitted-action set so clients render
// buttons from server truth instead of local guesses.
func GetBookingActions(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)
	bookingID := c.Params("bookingId")

	var booking models.Booking
	if err := database.DB.Preload("Payment").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	var role lifecycle.Role
	switch userID {
	case booking.TouristID.String():
		role = lifecycle.RoleTourist
	case booking.GuideID.String():
		role = lifecycle.RoleGuide
	default:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}

	rec := toRecord(booking, role)
	actions := lifecycle.Actions(rec, role, hasReviewFor(booking.ID))

	today := lifecycle.Today(time.Now())
	tag, err := lifecycle.Classify(rec, today)
	if err != nil {
		log.Printf("🔥 Booking %s classification fallback: %v", booking.Reference, err)
	}

	return c.JSON(fiber.Map{
		"classification": tag,
		"actions":        actions.List(),
	})
}

type UpdateBookingStatusRequest struct {
	Action string  `json:"action" validate:"required,oneof=confirm decline complete cancel"`
	Note   *string `json:"note,omitempty"`
}

// UpdateBookingStatus performs the guide/tourist transitions. The same gate
// that tells clients which buttons to show decides whether the transition is
// allowed, so the two can never disagree.
func UpdateBookingStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.
		Preload("Tourist").Preload("Guide").Preload("Tour").Preload("Payment").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	switch req.Action {
	case "confirm", "decline", "complete":
		if booking.GuideID != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the guide for this booking"})
		}
		gate := lifecycle.Actions(toRecord(booking, lifecycle.RoleGuide), lifecycle.RoleGuide, false)
		switch req.Action {
		case "confirm":
			if !gate.Has(lifecycle.CanConfirm) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending bookings can be confirmed"})
			}
			booking.Status = string(lifecycle.StatusConfirmed)
		case "decline":
			if !gate.Has(lifecycle.CanDecline) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending bookings can be declined"})
			}
			booking.Status = string(lifecycle.StatusCancelled)
		case "complete":
			if !gate.Has(lifecycle.CanComplete) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only confirmed bookings can be marked as complete"})
			}
			if booking.BookingDate > lifecycle.Today(time.Now()) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot mark a tour as complete before it has run"})
			}
			booking.Status = string(lifecycle.StatusCompleted)
		}
	case "cancel":
		if booking.TouristID != userID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
		}
		if booking.Status != string(lifecycle.StatusPending) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only pending bookings can be cancelled"})
		}
		booking.Status = string(lifecycle.StatusCancelled)
	}

	if req.Note != nil {
		booking.GuideNote = req.Note
	}

	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}

	go notifyStatusChange(booking, req.Action)

	return c.JSON(booking)
}

func notifyStatusChange(booking models.Booking, action string) {
	switch action {
	case "confirm":
		notifications.SendEmail(booking.Tourist.FullName, booking.Tourist.Email, "Your Booking is Confirmed!",
			fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your guide confirmed <strong>%s</strong> on %s. See you there!</p>", booking.Tour.Title, booking.BookingDate))
	case "decline":
		notifications.SendEmail(booking.Tourist.FullName, booking.Tourist.Email, "Booking Declined",
			fmt.Sprintf("<h1>Booking Declined</h1><p>Unfortunately your guide declined your request for <strong>%s</strong> on %s.</p>", booking.Tour.Title, booking.BookingDate))
	case "complete":
		notifications.SendEmail(booking.Tourist.FullName, booking.Tourist.Email, "How was your tour?",
			fmt.Sprintf("<h1>Tour Completed</h1><p>Your guide marked <strong>%s</strong> as completed. Please settle the payment and leave a review.</p>", booking.Tour.Title))
	case "cancel":
		notifications.SendEmail(booking.Guide.FullName, booking.Guide.Email, "Booking Cancelled",
			fmt.Sprintf("<h1>Booking Cancelled</h1><p>The tourist cancelled their request for <strong>%s</strong> on %s.</p>", booking.Tour.Title, booking.BookingDate))
	}
}

type RefundRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func RequestRefund(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Preload("Payment").First(&booking, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.TouristID != touristID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}
	if booking.Payment.ID == uuid.Nil || booking.Payment.Status != string(lifecycle.PaymentPaid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only paid bookings can be refunded"})
	}

	payment := booking.Payment
	refundStatus := "requested"
	payment.RefundStatus = &refundStatus
	payment.RefundReason = &req.Reason
	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit refund request"})
	}

	return c.JSON(fiber.Map{"message": "Refund request submitted successfully. An admin will review it shortly."})
}
