package routes

import (
	"github.com/anjiri1684/tour_marketplace/handlers"
	"github.com/anjiri1684/tour_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments")
	payments.Post("/initiate", middleware.Protected(), handlers.InitiatePayment)
	payments.Post("/paypal/capture", middleware.Protected(), handlers.CapturePayPalOrderHandler)

	// Provider callbacks carry no JWT.
	payments.Post("/mpesa/callback", handlers.HandleMpesaCallback)
}
