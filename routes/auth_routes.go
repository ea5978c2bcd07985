package routes

import (
	"github.com/dkoval85/bitchange_backend/handlers"
	"github.com/dkoval85/bitchange_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	partner := api.Group("/partner")
	partner.Post("/register", handlers.RegisterPartner)
	partner.Post("/login", handlers.LoginPartner)
	partner.Post("/change-password", middleware.Protected(), handlers.ChangePassword)
}
