package handlers

import (
	"errors"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	config "github.com/anjiri1684/tour_marketplace/configs"
	"github.com/anjiri1684/tour_marketplace/database"
	"github.com/anjiri1684/tour_marketplace/lifecycle"
	"github.com/anjiri1684/tour_marketplace/models"
	"github.com/anjiri1684/tour_marketplace/notifications"
	"github.com/anjiri1684/tour_marketplace/payments"
	"github.com/anjiri1684/tour_marketplace/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InitiatePaymentRequest struct {
	BookingID        string `json:"booking_id" validate:"required,uuid"`
	Provider         string `json:"provider" validate:"required,oneof=mpesa paypal"`
	MpesaPhoneNumber string `json:"mpesa_phone_number,omitempty"`
}

// InitiatePayment starts the tourist-driven payment flow for a booking. The
// booking status never changes here; only the payment axis moves, and only
// on provider confirmation.
func InitiatePayment(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	touristID, _ := uuid.Parse(claims["user_id"].(string))

	var req InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	if err := database.DB.Preload("Payment").Preload("Tour").First(&booking, "id = ?", req.BookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if booking.TouristID != touristID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This is not your booking"})
	}
	if booking.Status != string(lifecycle.StatusConfirmed) && booking.Status != string(lifecycle.StatusCompleted) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment is only available once the guide has confirmed the booking"})
	}
	if booking.Payment.ID != uuid.Nil && booking.Payment.Status == string(lifecycle.PaymentPaid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This booking has already been paid"})
	}

	price := booking.TotalAmount
	currency := booking.Currency

	if req.Provider == "mpesa" {
		if req.MpesaPhoneNumber == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "M-Pesa phone number is required"})
		}
		if currency != "KES" {
			kesPrice, err := services.ConvertUSDToKES(price)
			if err != nil {
				log.Printf("🔥 Currency conversion failed: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not perform currency conversion."})
			}
			price = math.Round(kesPrice)
			currency = "KES"
		}
	}

	payment := booking.Payment
	if payment.ID == uuid.Nil {
		payment = models.Payment{
			BookingID: &booking.ID,
			Amount:    price,
			Currency:  currency,
			Provider:  req.Provider,
			Status:    string(lifecycle.PaymentUnpaid),
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payment record"})
		}
	} else {
		payment.Amount = price
		payment.Currency = currency
		payment.Provider = req.Provider
		payment.Status = string(lifecycle.PaymentUnpaid)
		if err := database.DB.Save(&payment).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment record"})
		}
	}

	if req.Provider == "mpesa" {
		stkResponse, err := payments.InitiateMpesaSTKPush(price, req.MpesaPhoneNumber, payment.ID.String())
		if err != nil {
			log.Printf("🔥 CRITICAL: InitiateMpesaSTKPush failed: %v", err)
			if err.Error() == "invalid M-Pesa phone number format" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Payment could not be initiated, please try again."})
		}

		payment.MerchantRequestID = &stkResponse.Response.MerchantRequestID
		database.DB.Save(&payment)

		return c.JSON(fiber.Map{
			"payment_id":       payment.ID,
			"customer_message": stkResponse.Response.CustomerMessage,
		})
	}

	order, err := payments.CreatePayPalOrder(payment.Amount, payment.Currency, booking.Reference)
	if err != nil {
		log.Printf("🔥 PayPal CreateOrder API call failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create PayPal order"})
	}

	payment.ProviderOrderID = &order.ID
	if err := database.DB.Save(&payment).Error; err != nil {
		log.Printf("🔥 Failed to save ProviderOrderID: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment record"})
	}

	return c.JSON(fiber.Map{
		"payment_id":  payment.ID,
		"order_id":    order.ID,
		"payment_url": order.ApprovalURL(),
	})
}

type KcbWebhookPayload struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
			Reference string `json:"Reference"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

func HandleMpesaCallback(c *fiber.Ctx) error {
	var payload KcbWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	stk := payload.Body.StkCallback

	var paymentRefID string
	parts := strings.Split(stk.Reference, "-")
	if len(parts) == 2 {
		paymentRefID = parts[1]
	} else {
		paymentRefID = stk.Reference
	}

	log.Printf("Received M-Pesa callback for MerchantRequestID: %s, PaymentRefID: %s, ResultCode: %d",
		stk.MerchantRequestID, paymentRefID, stk.ResultCode)

	var payment models.Payment
	if err := database.DB.Where("id = ?", paymentRefID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found"})
	}

	if payment.Status == string(lifecycle.PaymentPaid) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook already processed"})
	}

	if stk.ResultCode != 0 {
		payment.Status = string(lifecycle.PaymentFailed)
		database.DB.Save(&payment)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Acknowledged failed payment"})
	}

	var mpesaReceipt string
	for _, item := range stk.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if val, ok := item.Value.(string); ok {
				mpesaReceipt = val
				break
			}
		}
	}

	if err := settlePayment(&payment, mpesaReceipt); err != nil {
		log.Printf("🔥 CRITICAL: Error processing M-Pesa callback for PaymentRefID %s: %v", paymentRefID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process webhook"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Webhook processed successfully"})
}

func CapturePayPalOrderHandler(c *fiber.Ctx) error {
	type CaptureRequest struct {
		OrderID string `json:"orderID" validate:"required"`
	}
	var req CaptureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var payment models.Payment
	if err := database.DB.Where("provider_order_id = ?", req.OrderID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found for this order"})
	}

	capturedOrder, err := payments.CapturePayPalOrder(req.OrderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if capturedOrder.Status != "COMPLETED" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order not completed on PayPal's end"})
	}

	if err := settlePayment(&payment, capturedOrder.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize payment"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Payment captured and booking settled"})
}

// settlePayment marks the payment PAID, credits the guide's balance net of
// platform commission, and kicks off receipt email and voucher generation.
func settlePayment(payment *models.Payment, providerTxnID string) error {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		payment.Status = string(lifecycle.PaymentPaid)
		payment.ProviderTxnID = &providerTxnID
		payment.PaidAt = &now
		if err := tx.Save(payment).Error; err != nil {
			return err
		}

		if payment.BookingID == nil {
			return errors.New("payment has no booking")
		}

		var booking models.Booking
		if err := tx.Preload("Tourist").Preload("Guide").Preload("Tour").First(&booking, "id = ?", payment.BookingID).Error; err != nil {
			return err
		}

		commissionRate, _ := strconv.ParseFloat(config.Config("PLATFORM_COMMISSION_RATE"), 64)
		earnings := booking.TotalAmount * (1 - commissionRate)

		if err := tx.Model(&models.Guide{}).Where("user_id = ?", booking.GuideID).
			Update("current_balance", gorm.Expr("current_balance + ?", earnings)).Error; err != nil {
			return err
		}

		go func() {
			notifications.SendEmail(booking.Tourist.FullName, booking.Tourist.Email, "Payment Received",
				"<h1>Payment Received</h1><p>Thanks! Your payment for <strong>"+booking.Tour.Title+"</strong> is confirmed. Your voucher will be available shortly.</p>")
			notifications.SendEmail(booking.Guide.FullName, booking.Guide.Email, "Booking Paid",
				"<h1>Booking Paid</h1><p>The tourist has paid for <strong>"+booking.Tour.Title+"</strong> and your earnings have been credited.</p>")
		}()
		go services.GenerateBookingVoucher(booking.ID)

		return nil
	})
	return err
}
