package main

import (
	"log"
	"time"

	config "github.com/dkoval85/bitchange_backend/configs"
	"github.com/dkoval85/bitchange_backend/database"
	"github.com/dkoval85/bitchange_backend/handlers"
	"github.com/dkoval85/bitchange_backend/jobs"
	"github.com/dkoval85/bitchange_backend/notifications"
	"github.com/dkoval85/bitchange_backend/routes"
	"github.com/dkoval85/bitchange_backend/services"
	"github.com/dkoval85/bitchange_backend/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	notifications.InitEmailService()

	ledger := services.NewGormLedger(database.DB)
	minimumPayout := config.ConfigFloat("MIN_PAYOUT_AMOUNT", 1000)
	handlers.Init(ledger, minimumPayout)

	go websocket.RunHub()
	go jobs.RefreshExchangeRates()

	c := cron.New()
	c.AddFunc("* * * * *", jobs.RefreshExchangeRates)
	go c.Start()
	log.Println("✅ Cron job for exchange rates scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "BitChange Partner API",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"code":    code,
				"error":   err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Api-Key, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.TrackRoutes(app)
	routes.DashboardRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
