package routes

import (
	"github.com/dkoval85/bitchange_backend/handlers"
	"github.com/dkoval85/bitchange_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func TrackRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/track/click", handlers.TrackClick)
	api.Post("/orders", handlers.CreateOrder)
	api.Post("/orders/:orderId/complete", middleware.BackofficeRequired(), handlers.CompleteOrder)
}
