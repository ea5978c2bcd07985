package services

import (
	"fmt"

	"github.com/dkoval85/bitchange_backend/models"
	"github.com/dkoval85/bitchange_backend/notifications"
	"github.com/google/uuid"
)

type PayoutService struct {
	ledger        Ledger
	minimumPayout float64
}

func NewPayoutService(ledger Ledger, minimumPayout float64) *PayoutService {
	return &PayoutService{ledger: ledger, minimumPayout: minimumPayout}
}

type RequestPayoutInput struct {
	PartnerID      uuid.UUID
	Amount         float64
	PaymentMethod  string
	PaymentDetails string
}

// RequestPayout reserves part of the partner's balance for withdrawal: it
// inserts a pending payout and debits the balance in one transaction, with
// the partner row locked from the balance check through the debit. Two
// concurrent requests whose sum exceeds the balance therefore cannot both
// pass the funds check. No actual transfer happens here; the back-office
// process settles the payout later.
func (s *PayoutService) RequestPayout(in RequestPayoutInput) (*models.Payout, error) {
	if in.Amount < s.minimumPayout {
		return nil, ErrBelowMinimumPayout
	}

	var payout *models.Payout
	var partnerEmail string
	err := s.ledger.Update(func(tx LedgerTx) error {
		partner, err := tx.PartnerForUpdate(in.PartnerID)
		if err != nil {
			return err
		}
		if partner.Balance < in.Amount {
			return ErrInsufficientFunds
		}
		partnerEmail = partner.Email

		payout = &models.Payout{
			PartnerID:      in.PartnerID,
			Amount:         in.Amount,
			PaymentMethod:  in.PaymentMethod,
			PaymentDetails: in.PaymentDetails,
			Status:         "pending",
		}
		if err := tx.CreatePayout(payout); err != nil {
			return err
		}
		return tx.DebitBalance(in.PartnerID, in.Amount)
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendEmail(
		"",
		partnerEmail,
		"Payout Request Received",
		fmt.Sprintf("<h1>Payout Requested</h1><p>Your payout request for %.2f has been recorded and will be processed by our team.</p>", in.Amount),
	)

	return payout, nil
}
