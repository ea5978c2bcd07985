package handlers

import (
	"errors"

	"github.com/dkoval85/bitchange_backend/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TrackClickRequest struct {
	PartnerCode  string `json:"partner_code" validate:"required"`
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	City         string `json:"city"`
}

func TrackClick(c *fiber.Ctx) error {
	var req TrackClickRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	click, err := trackingService.TrackClick(services.TrackClickInput{
		PartnerCode:  req.PartnerCode,
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		City:         req.City,
		IPAddress:    c.IP(),
		UserAgent:    c.Get("User-Agent"),
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"click_id":      click.ID,
		"partner_id":    click.PartnerID,
		"from_currency": click.FromCurrency,
		"to_currency":   click.ToCurrency,
	})
}

type CreateOrderRequest struct {
	PartnerID       *string `json:"partner_id"`
	FromCurrency    string  `json:"from_currency" validate:"required"`
	ToCurrency      string  `json:"to_currency" validate:"required"`
	FromAmount      float64 `json:"from_amount" validate:"required,gt=0"`
	ToAmount        float64 `json:"to_amount" validate:"required,gt=0"`
	ExchangeRate    float64 `json:"exchange_rate" validate:"required,gt=0"`
	MarginProfit    float64 `json:"margin_profit" validate:"gte=0"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerContact string  `json:"customer_contact"`
	WalletAddress   string  `json:"wallet_address"`
	CardNumber      string  `json:"card_number"`
}

func CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var partnerID *uuid.UUID
	if req.PartnerID != nil && *req.PartnerID != "" {
		parsed, err := uuid.Parse(*req.PartnerID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid partner ID format"})
		}
		partnerID = &parsed
	}

	order, err := trackingService.CreateOrder(services.CreateOrderInput{
		PartnerID:       partnerID,
		FromCurrency:    req.FromCurrency,
		ToCurrency:      req.ToCurrency,
		FromAmount:      req.FromAmount,
		ToAmount:        req.ToAmount,
		ExchangeRate:    req.ExchangeRate,
		MarginProfit:    req.MarginProfit,
		CustomerEmail:   req.CustomerEmail,
		CustomerContact: req.CustomerContact,
		WalletAddress:   req.WalletAddress,
		CardNumber:      req.CardNumber,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
}

func CompleteOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Invalid order ID format"})
	}

	earningAmount, err := commissionService.CompleteOrder(orderID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "error": "Order not found or already completed"})
		}
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"earning_amount": earningAmount,
		"message":        "Order completed successfully",
	})
}
