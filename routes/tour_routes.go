package routes

import (
	"github.com/anjiri1684/tour_marketplace/handlers"
	"github.com/anjiri1684/tour_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func TourRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tours := api.Group("/tours", middleware.Protected(), middleware.GuideRequired())
	tours.Post("", handlers.CreateTour)
	tours.Patch("/:tourId", handlers.UpdateTour)
	tours.Delete("/:tourId", handlers.DeactivateTour)
}
