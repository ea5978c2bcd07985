package handlers

import (
	"github.com/dkoval85/bitchange_backend/services"
	"github.com/gofiber/fiber/v2"
)

func GetStats(c *fiber.Ctx) error {
	partnerID, err := partnerIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	stats, err := dashboardService.Stats(partnerID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(struct {
		Success bool `json:"success"`
		*services.PartnerStats
	}{true, stats})
}

func GetEarnings(c *fiber.Ctx) error {
	partnerID, err := partnerIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	earnings, err := dashboardService.Earnings(partnerID)
	if err != nil {
		return serviceError(c, err)
	}

	items := make([]fiber.Map, 0, len(earnings))
	for _, e := range earnings {
		items = append(items, fiber.Map{
			"id":              e.ID,
			"amount":          e.Amount,
			"commission_rate": e.CommissionRate,
			"order_amount":    e.OrderAmount,
			"order_direction": e.OrderDirection,
			"earned_at":       e.EarnedAt,
			"order_number":    e.Order.OrderNumber,
		})
	}

	return c.JSON(fiber.Map{"success": true, "earnings": items})
}

func GetPayouts(c *fiber.Ctx) error {
	partnerID, err := partnerIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	payouts, err := dashboardService.Payouts(partnerID)
	if err != nil {
		return serviceError(c, err)
	}

	items := make([]fiber.Map, 0, len(payouts))
	for _, p := range payouts {
		items = append(items, fiber.Map{
			"id":             p.ID,
			"amount":         p.Amount,
			"payment_method": p.PaymentMethod,
			"status":         p.Status,
			"created_at":     p.CreatedAt,
			"processed_at":   p.ProcessedAt,
		})
	}

	return c.JSON(fiber.Map{"success": true, "payouts": items})
}

type RequestPayoutRequest struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod  string  `json:"payment_method" validate:"required"`
	PaymentDetails string  `json:"payment_details" validate:"required"`
}

func RequestPayout(c *fiber.Ctx) error {
	partnerID, err := partnerIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	var req RequestPayoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	payout, err := payoutService.RequestPayout(services.RequestPayoutInput{
		PartnerID:      partnerID,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"payout_id": payout.ID,
		"message":   "Payout request created",
	})
}
