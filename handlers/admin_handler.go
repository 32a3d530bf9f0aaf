package handlers

import (
	"time"

	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/lifecycle"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/anjiri1684/tour_marketplace/notifications"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var pendingGuides []models.Guide
	if err := database.DB.Preload("User").Where("status = ?", "pending").Find(&pendingGuides).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pendingGuides)
}

func ManageApplication(c *fiber.Ctx) error {
	type MgtRequest struct {
		Status string `json:"status" validate:"required,oneof=active rejected"`
	}

	var req MgtRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	guideUserID := c.Params("guideId")

	var guideApp models.Guide
	if err := database.DB.Where("user_id = ?", guideUserID).First(&guideApp).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}

	var user models.User
	if err := database.DB.Where("id = ?", guideUserID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Associated user not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		guideApp.Status = req.Status
		if err := tx.Save(&guideApp).Error; err != nil {
			return err
		}

		if req.Status == "active" {
			user.Role = "guide"
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application status"})
	}

	switch req.Status {
	case "active":
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Your Guide Application has been Approved!",
			"<h1>Congratulations!</h1><p>Your application to become a guide has been approved. You can now list tours and accept bookings.</p>",
		)
	case "rejected":
		go notifications.SendEmail(
			user.FullName,
			user.Email,
			"Update on Your Guide Application",
			"<h1>Application Update</h1><p>We regret to inform you that after careful review, your guide application was not approved at this time.</p>",
		)
	}

	return c.JSON(fiber.Map{"message": "Application status updated successfully"})
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	query := database.DB.Order("created_at desc")
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

func DeactivateUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.Role == "admin" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot deactivate an admin account"})
	}

	user.IsActive = false
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate user"})
	}

	return c.JSON(fiber.Map{"message": "User deactivated"})
}

// GetAdminDashboard reduces every booking on the platform into the summary
// tiles, plus head-counts for the user table.
func GetAdminDashboard(c *fiber.Ctx) error {
	var bookings []models.Booking
	database.DB.Preload("Payment").Find(&bookings)

	records := make([]lifecycle.Record, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, toRecord(b, lifecycle.RoleAdmin))
	}
	summary := lifecycle.Reduce(records, lifecycle.Today(time.Now()))

	var touristCount, guideCount, tourCount int64
	database.DB.Model(&models.User{}).Where("role = ?", "tourist").Count(&touristCount)
	database.DB.Model(&models.User{}).Where("role = ?", "guide").Count(&guideCount)
	database.DB.Model(&models.Tour{}).Where("is_active = ?", true).Count(&tourCount)

	return c.JSON(fiber.Map{
		"stats":         summary,
		"tourist_count": touristCount,
		"guide_count":   guideCount,
		"tour_count":    tourCount,
	})
}

func ListRefundRequests(c *fiber.Ctx) error {
	var refunds []models.Payment
	if err := database.DB.Where("refund_status IS NOT NULL").Order("updated_at desc").Find(&refunds).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(refunds)
}

func ResolveRefund(c *fiber.Ctx) error {
	type RefundDecision struct {
		Decision string `json:"decision" validate:"required,oneof=approved denied"`
	}
	var req RefundDecision
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentID := c.Params("paymentId")

	var payment models.Payment
	if err := database.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}
	if payment.RefundStatus == nil || *payment.RefundStatus != "requested" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No pending refund request on this payment"})
	}

	payment.RefundStatus = &req.Decision
	if req.Decision == "approved" {
		payment.Status = string(lifecycle.PaymentRefunded)
	}
	if err := database.DB.Save(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve refund"})
	}

	return c.JSON(fiber.Map{"message": "Refund request " + req.Decision})
}

func ListPayoutRequests(c *fiber.Ctx) error {
	var payouts []models.PayoutRequest
	if err := database.DB.Preload("Guide").Order("requested_at desc").Find(&payouts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(payouts)
}

func ProcessPayout(c *fiber.Ctx) error {
	type PayoutDecision struct {
		Status string  `json:"status" validate:"required,oneof=paid rejected"`
		Notes  *string `json:"notes,omitempty"`
	}
	var req PayoutDecision
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payoutID := c.Params("payoutId")

	var payout models.PayoutRequest
	if err := database.DB.First(&payout, "id = ?", payoutID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payout request not found"})
	}
	if payout.Status != "pending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payout request has already been processed"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		payout.Status = req.Status
		payout.AdminNotes = req.Notes
		payout.ProcessedAt = &now
		if err := tx.Save(&payout).Error; err != nil {
			return err
		}

		// A rejected payout returns the funds to the guide's balance.
		if req.Status == "rejected" {
			return tx.Model(&models.Guide{}).Where("user_id = ?", payout.GuideID).
				Update("current_balance", gorm.Expr("current_balance + ?", payout.Amount)).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process payout"})
	}

	return c.JSON(payout)
}
