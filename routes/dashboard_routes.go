package routes

import (
	"github.com/dkoval85/bitchange_backend/handlers"
	"github.com/dkoval85/bitchange_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func DashboardRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	dashboard := api.Group("/dashboard", middleware.Protected())
	dashboard.Get("/stats", handlers.GetStats)
	dashboard.Get("/earnings", handlers.GetEarnings)
	dashboard.Get("/payouts", handlers.GetPayouts)
	dashboard.Post("/payouts", handlers.RequestPayout)
}
