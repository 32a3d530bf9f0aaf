package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/lifecycle"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GuideApplicationRequest struct {
	Headline  string `json:"headline" validate:"required"`
	Bio       string `json:"bio" validate:"required"`
	Languages string `json:"languages,omitempty"`
}

func ApplyToBeAGuide(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req GuideApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingGuide models.Guide
	err := database.DB.Where("user_id = ?", userID).First(&existingGuide).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	newApplication := models.Guide{
		UserID:   userID,
		Headline: &req.Headline,
		Bio:      &req.Bio,
	}
	if req.Languages != "" {
		newApplication.Languages = &req.Languages
	}

	if err := database.DB.Create(&newApplication).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(newApplication)
}

// GetGuideProfile is the public guide page: profile, rating and active tours.
func GetGuideProfile(c *fiber.Ctx) error {
	guideID := c.Params("guideId")

	var guide models.Guide
	if err := database.DB.Preload("User").Where("user_id = ? AND status = ?", guideID, "active").First(&guide).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guide not found"})
	}

	var tours []models.Tour
	database.DB.Where("guide_id = ? AND is_active = ?", guideID, true).Find(&tours)

	return c.JSON(fiber.Map{
		"guide": guide,
		"tours": tours,
	})
}

// GetGuideDashboard folds the guide's bookings into the summary tiles. The
// stats are recomputed from scratch on every request; nothing is cached or
// patched incrementally.
func GetGuideDashboard(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID := claims["user_id"].(string)

	var bookings []models.Booking
	database.DB.
		Preload("Payment").
		Where("guide_id = ?", guideID).
		Find(&bookings)

	records := make([]lifecycle.Record, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, toRecord(b, lifecycle.RoleGuide))
	}

	summary := lifecycle.Reduce(records, lifecycle.Today(time.Now()))

	var guide models.Guide
	database.DB.Where("user_id = ?", guideID).First(&guide)

	return c.JSON(fiber.Map{
		"stats":           summary,
		"avg_rating":      guide.AvgRating,
		"current_balance": guide.CurrentBalance,
	})
}

type PayoutRequestBody struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func RequestPayout(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	var req PayoutRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payout models.PayoutRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var guide models.Guide
		if err := tx.Where("user_id = ?", guideID).First(&guide).Error; err != nil {
			return errors.New("guide profile not found")
		}
		if guide.CurrentBalance < req.Amount {
			return errors.New("requested amount exceeds your current balance")
		}

		if err := tx.Model(&models.Guide{}).Where("user_id = ?", guideID).
			Update("current_balance", gorm.Expr("current_balance - ?", req.Amount)).Error; err != nil {
			return err
		}

		payout = models.PayoutRequest{
			GuideID:     guideID,
			Amount:      req.Amount,
			RequestedAt: time.Now(),
		}
		return tx.Create(&payout).Error
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(payout)
}
