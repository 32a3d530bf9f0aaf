package routes

import (
	"github.com/anjiri1684/tour_marketplace/handlers"
	"github.com/anjiri1684/tour_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings", middleware.Protected())
	bookings.Post("", handlers.CreateBooking)
	bookings.Get("/me", handlers.GetMyBookings)
	bookings.Get("/:bookingId", handlers.GetBooking)
	bookings.Get("/:bookingId/actions", handlers.GetBookingActions)
	bookings.Patch("/:bookingId/status", handlers.UpdateBookingStatus)
	bookings.Post("/:bookingId/review", handlers.CreateReview)
	bookings.Post("/:bookingId/request-refund", handlers.RequestRefund)
}
