package handlers

import (
	"errors"
	"log"

	"github.com/dkoval85/bitchange_backend/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

var (
	ledger            services.Ledger
	trackingService   *services.TrackingService
	commissionService *services.CommissionService
	payoutService     *services.PayoutService
	dashboardService  *services.DashboardService
)

// Init wires the handler package to a ledger. Called once at startup.
func Init(l services.Ledger, minimumPayout float64) {
	ledger = l
	trackingService = services.NewTrackingService(l)
	commissionService = services.NewCommissionService(l)
	payoutService = services.NewPayoutService(l, minimumPayout)
	dashboardService = services.NewDashboardService(l)
}

// serviceError maps ledger error kinds to response statuses: validation and
// funds problems are client errors, anything unexpected is a server error
// and safe for the caller to retry whole.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Not found"})
	case errors.Is(err, services.ErrInsufficientFunds):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Insufficient funds"})
	case errors.Is(err, services.ErrBelowMinimumPayout):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "Email already registered"})
	default:
		log.Printf("🔥 Ledger operation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Operation failed, please retry"})
	}
}
