package routes

import (
	"github.com/anjiri1684/tour_marketplace/handlers"
	"github.com/anjiri1684/tour_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func GuideRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/guides/apply", middleware.Protected(), handlers.ApplyToBeAGuide)

	guide := api.Group("/guide", middleware.Protected(), middleware.GuideRequired())
	guide.Get("/dashboard", handlers.GetGuideDashboard)
	guide.Get("/tours", handlers.GetMyTours)
	guide.Get("/bookings", handlers.GetGuideBookings)
	guide.Get("/bookings/pending", handlers.GetPendingGuideBookings)
	guide.Post("/payouts", handlers.RequestPayout)
}
