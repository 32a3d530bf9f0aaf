package routes

import (
	"github.com/anjiri1684/tour_marketplace/handlers"
	"github.com/anjiri1684/tour_marketplace/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/dashboard", handlers.GetAdminDashboard)
	admin.Get("/applications", handlers.ListPendingApplications)
	admin.Patch("/applications/:guideId", handlers.ManageApplication)
	admin.Get("/users", handlers.ListUsers)
	admin.Patch("/users/:userId/deactivate", handlers.DeactivateUser)
	admin.Get("/refunds", handlers.ListRefundRequests)
	admin.Patch("/refunds/:paymentId", handlers.ResolveRefund)
	admin.Get("/payouts", handlers.ListPayoutRequests)
	admin.Patch("/payouts/:payoutId", handlers.ProcessPayout)
}
