package handlers

import (
	"errors"

	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/lifecycle"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var newReview models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("Payment").First(&booking, "id = ?", bookingID).Error; err != nil {
			return errors.New("booking not found")
		}
		if booking.TouristID != touristID {
			return errors.New("you are not the tourist for this booking")
		}

		var existing int64
		tx.Model(&models.Review{}).Where("booking_id = ?", bookingID).Count(&existing)

		gate := lifecycle.Actions(toRecord(booking, lifecycle.RoleTourist), lifecycle.RoleTourist, existing > 0)
		if !gate.Has(lifecycle.CanReview) {
			if existing > 0 {
				return errors.New("a review for this booking has already been submitted")
			}
			return errors.New("reviews can only be submitted for completed, paid bookings")
		}

		newReview = models.Review{
			BookingID: booking.ID,
			TourID:    booking.TourID,
			TouristID: touristID,
			GuideID:   booking.GuideID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := tx.Create(&newReview).Error; err != nil {
			return err
		}

		var result struct {
			Avg float64
		}
		tx.Model(&models.Review{}).Where("guide_id = ?", booking.GuideID).Select("avg(rating) as avg").Scan(&result)

		if err := tx.Model(&models.Guide{}).Where("user_id = ?", booking.GuideID).Update("avg_rating", result.Avg).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(newReview)
}

func GetGuideReviews(c *fiber.Ctx) error {
	guideID := c.Params("guideId")

	var reviews []models.Review
	database.DB.
		Preload("Tourist").
		Where("guide_id = ?", guideID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}

func GetUserReviews(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var reviews []models.Review
	database.DB.
		Where("tourist_id = ?", userID).
		Order("created_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}
