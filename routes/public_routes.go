package routes

import (
	"github.com/anjiri1684/tour_marketplace/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/tours", handlers.ListTours)
	api.Get("/tours/:tourId", handlers.GetTour)
	api.Get("/guides/:guideId", handlers.GetGuideProfile)
	api.Get("/guides/:guideId/reviews", handlers.GetGuideReviews)
	api.Get("/users/:userId/reviews", handlers.GetUserReviews)
}
