package routes

import (
	"github.com/dkoval85/bitchange_backend/handlers"
	ws "github.com/dkoval85/bitchange_backend/websocket"
	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/rates", handlers.GetRates)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/rates", fiberws.New(ws.ServeRates))
}
