package handlers

import (
	"strconv"

	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type TourRequest struct {
	Title         string   `json:"title" validate:"required,min=3"`
	Description   string   `json:"description"`
	Location      string   `json:"location" validate:"required"`
	Fee           float64  `json:"fee" validate:"required,gt=0"`
	Currency      string   `json:"currency" validate:"omitempty,iso4217"`
	DurationHours int      `json:"duration_hours" validate:"required,gt=0"`
	MaxGroupSize  int      `json:"max_group_size" validate:"required,gt=0"`
	Images        []string `json:"images"`
}

// ListTours is the public browse endpoint. Supports location, price range
// and pagination filters.
func ListTours(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := database.DB.Preload("Guide").Where("is_active = ?", true)

	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if minFee := c.Query("min_fee"); minFee != "" {
		if v, err := strconv.ParseFloat(minFee, 64); err == nil {
			query = query.Where("fee >= ?", v)
		}
	}
	if maxFee := c.Query("max_fee"); maxFee != "" {
		if v, err := strconv.ParseFloat(maxFee, 64); err == nil {
			query = query.Where("fee <= ?", v)
		}
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var tours []models.Tour
	if err := query.Order("created_at desc").Limit(pageSize).Offset(offset).Find(&tours).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(tours)
}

func GetTour(c *fiber.Ctx) error {
	tourID := c.Params("tourId")

	var tour models.Tour
	if err := database.DB.Preload("Guide").First(&tour, "id = ?", tourID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tour not found"})
	}

	return c.JSON(tour)
}

func CreateTour(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID, _ := uuid.Parse(claims["user_id"].(string))

	var req TourRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var guide models.Guide
	if err := database.DB.Where("user_id = ? AND status = ?", guideID, "active").First(&guide).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only approved guides can create tours"})
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	tour := models.Tour{
		GuideID:       guideID,
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Fee:           req.Fee,
		Currency:      currency,
		DurationHours: req.DurationHours,
		MaxGroupSize:  req.MaxGroupSize,
		Images:        req.Images,
	}

	if err := database.DB.Create(&tour).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tour"})
	}

	return c.Status(fiber.StatusCreated).JSON(tour)
}

func GetMyTours(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID := claims["user_id"].(string)

	var tours []models.Tour
	database.DB.Where("guide_id = ?", guideID).Order("created_at desc").Find(&tours)

	return c.JSON(tours)
}

func UpdateTour(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID := claims["user_id"].(string)
	tourID := c.Params("tourId")

	var tour models.Tour
	if err := database.DB.First(&tour, "id = ?", tourID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tour not found"})
	}
	if tour.GuideID.String() != guideID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the guide for this tour"})
	}

	var req TourRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tour.Title = req.Title
	tour.Description = req.Description
	tour.Location = req.Location
	tour.Fee = req.Fee
	tour.DurationHours = req.DurationHours
	tour.MaxGroupSize = req.MaxGroupSize
	if req.Currency != "" {
		tour.Currency = req.Currency
	}
	if req.Images != nil {
		tour.Images = req.Images
	}

	if err := database.DB.Save(&tour).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update tour"})
	}

	return c.JSON(tour)
}

// DeactivateTour hides a tour from the public listing. Existing bookings
// keep their snapshot; nothing is deleted.
func DeactivateTour(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	guideID := claims["user_id"].(string)
	tourID := c.Params("tourId")

	var tour models.Tour
	if err := database.DB.First(&tour, "id = ?", tourID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tour not found"})
	}
	if tour.GuideID.String() != guideID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not the guide for this tour"})
	}

	tour.IsActive = false
	if err := database.DB.Save(&tour).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate tour"})
	}

	return c.JSON(fiber.Map{"message": "Tour deactivated"})
}
