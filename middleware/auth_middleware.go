package middleware

import (
	config "github.com/dkoval85/bitchange_backend/configs"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
)

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"success": false, "error": "Missing or malformed JWT"})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"success": false, "error": "Invalid or expired JWT"})
}

// BackofficeRequired guards operator actions (order completion) behind a
// shared API key. Partners never hold this key.
func BackofficeRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := config.Config("BACKOFFICE_API_KEY")
		if expected == "" || c.Get("X-Api-Key") != expected {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Forbidden: back-office access required",
			})
		}
		return c.Next()
	}
}
