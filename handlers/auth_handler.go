package handlers

import (
	"errors"
	"time"

	config "github.com/dkoval85/bitchange_backend/configs"
	"github.com/dkoval85/bitchange_backend/models"
	"github.com/dkoval85/bitchange_backend/services"
	"github.com/dkoval85/bitchange_backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func RegisterPartner(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	var partner models.Partner
	err = ledger.Update(func(tx services.LedgerTx) error {
		if _, err := tx.PartnerByEmail(req.Email); err == nil {
			return services.ErrEmailTaken
		} else if !errors.Is(err, services.ErrNotFound) {
			return err
		}

		code, err := uniquePartnerCode(tx)
		if err != nil {
			return err
		}

		partner = models.Partner{
			Email:          req.Email,
			PasswordHash:   string(hashedPassword),
			PartnerCode:    code,
			Balance:        0,
			CommissionRate: config.ConfigFloat("DEFAULT_COMMISSION_RATE", 2.00),
		}
		return tx.CreatePartner(&partner)
	})
	if err != nil {
		return serviceError(c, err)
	}

	token, err := issueToken(partner.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"partner_id":   partner.ID,
		"email":        partner.Email,
		"partner_code": partner.PartnerCode,
		"token":        token,
	})
}

func LoginPartner(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var partner *models.Partner
	err := ledger.View(func(v services.LedgerView) error {
		var err error
		partner, err = v.PartnerByEmail(req.Email)
		return err
	})
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(partner.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid email or password"})
	}

	token, err := issueToken(partner.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"partner_id":      partner.ID,
		"email":           partner.Email,
		"partner_code":    partner.PartnerCode,
		"balance":         partner.Balance,
		"commission_rate": partner.CommissionRate,
		"token":           token,
	})
}

func ChangePassword(c *fiber.Ctx) error {
	type Request struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	partnerID, err := partnerIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "Failed to hash password"})
	}

	err = ledger.Update(func(tx services.LedgerTx) error {
		partner, err := tx.PartnerByID(partnerID)
		if err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(partner.PasswordHash), []byte(req.OldPassword)); err != nil {
			return errWrongPassword
		}
		return tx.UpdatePassword(partnerID, string(hashedPassword))
	})
	if err != nil {
		if errors.Is(err, errWrongPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "Current password is incorrect"})
		}
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password changed successfully"})
}

var errWrongPassword = errors.New("wrong password")

func issueToken(partnerID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"partner_id": partnerID.String(),
		"exp":        time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

func partnerIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	raw, ok := claims["partner_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("partner_id claim missing")
	}
	return uuid.Parse(raw)
}

func uniquePartnerCode(tx services.LedgerTx) (string, error) {
	for {
		code := utils.GeneratePartnerCode()
		exists, err := tx.PartnerCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}
