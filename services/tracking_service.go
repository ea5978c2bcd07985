package services

import (
	"github.com/dkoval85/bitchange_backend/models"
	"github.com/dkoval85/bitchange_backend/utils"
	"github.com/google/uuid"
)

type TrackingService struct {
	ledger Ledger
}

func NewTrackingService(ledger Ledger) *TrackingService {
	return &TrackingService{ledger: ledger}
}

type TrackClickInput struct {
	PartnerCode  string
	FromCurrency string
	ToCurrency   string
	City         string
	IPAddress    string
	UserAgent    string
}

// TrackClick records one referral visit against the partner owning the
// code. Every call creates a new click; there is no deduplication.
func (s *TrackingService) TrackClick(in TrackClickInput) (*models.Click, error) {
	var click *models.Click
	err := s.ledger.Update(func(tx LedgerTx) error {
		partner, err := tx.PartnerByCode(in.PartnerCode)
		if err != nil {
			return err
		}

		click = &models.Click{
			PartnerID:    partner.ID,
			IPAddress:    in.IPAddress,
			UserAgent:    in.UserAgent,
			FromCurrency: in.FromCurrency,
			ToCurrency:   in.ToCurrency,
			City:         in.City,
		}
		return tx.CreateClick(click)
	})
	if err != nil {
		return nil, err
	}
	return click, nil
}

type CreateOrderInput struct {
	PartnerID       *uuid.UUID
	FromCurrency    string
	ToCurrency      string
	FromAmount      float64
	ToAmount        float64
	ExchangeRate    float64
	MarginProfit    float64
	CustomerEmail   string
	CustomerContact string
	WalletAddress   string
	CardNumber      string
}

// CreateOrder records a pending exchange order. PartnerID may be nil for
// organic orders, which then accrue no commission on completion.
func (s *TrackingService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	var order *models.Order
	err := s.ledger.Update(func(tx LedgerTx) error {
		number, err := uniqueOrderNumber(tx)
		if err != nil {
			return err
		}

		order = &models.Order{
			PartnerID:       in.PartnerID,
			OrderNumber:     number,
			FromCurrency:    in.FromCurrency,
			ToCurrency:      in.ToCurrency,
			FromAmount:      in.FromAmount,
			ToAmount:        in.ToAmount,
			ExchangeRate:    in.ExchangeRate,
			MarginProfit:    in.MarginProfit,
			CustomerEmail:   in.CustomerEmail,
			CustomerContact: in.CustomerContact,
			WalletAddress:   in.WalletAddress,
			CardNumber:      in.CardNumber,
			Status:          "pending",
		}
		return tx.CreateOrder(order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func uniqueOrderNumber(tx LedgerTx) (string, error) {
	for {
		number := utils.GenerateOrderNumber()
		exists, err := tx.OrderNumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
}
