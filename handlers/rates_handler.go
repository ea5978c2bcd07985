package handlers

import (
	"time"

	"github.com/dkoval85/bitchange_backend/services"
	"github.com/gofiber/fiber/v2"
)

func GetRates(c *fiber.Ctx) error {
	rates, err := services.FetchRates()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Could not fetch exchange rates"})
	}

	c.Set("Cache-Control", "public, max-age=60")
	return c.JSON(fiber.Map{
		"success":   true,
		"rates":     rates,
		"timestamp": time.Now().Unix(),
	})
}
