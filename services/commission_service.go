package services

import (
	"fmt"
	"time"

	"github.com/dkoval85/bitchange_backend/models"
	"github.com/google/uuid"
)

type CommissionService struct {
	ledger Ledger
}

func NewCommissionService(ledger Ledger) *CommissionService {
	return &CommissionService{ledger: ledger}
}

// CompleteOrder transitions a pending order to completed and, for
// partner-attributed orders, credits the commission in the same
// transaction. The order row is locked while still pending, so a second
// completion attempt finds no pending row and gets ErrNotFound, the same
// answer as for an order that never existed.
//
// The commission rate applied is the partner's rate at completion time, not
// at order creation: a rate change retroactively affects orders still
// pending.
func (s *CommissionService) CompleteOrder(orderID uuid.UUID) (float64, error) {
	var earningAmount float64
	err := s.ledger.Update(func(tx LedgerTx) error {
		order, err := tx.PendingOrderForUpdate(orderID)
		if err != nil {
			return err
		}

		completedAt := time.Now()

		if order.PartnerID != nil {
			partner, err := tx.PartnerForUpdate(*order.PartnerID)
			if err != nil {
				return err
			}

			earningAmount = order.MarginProfit * (partner.CommissionRate / 100)

			earning := &models.Earning{
				PartnerID:      partner.ID,
				OrderID:        order.ID,
				Amount:         earningAmount,
				CommissionRate: partner.CommissionRate,
				OrderAmount:    order.ToAmount,
				OrderDirection: fmt.Sprintf("%s → %s", order.FromCurrency, order.ToCurrency),
				EarnedAt:       completedAt,
			}
			if err := tx.CreateEarning(earning); err != nil {
				return err
			}
			if err := tx.CreditBalance(partner.ID, earningAmount); err != nil {
				return err
			}
		}

		return tx.MarkOrderCompleted(order.ID, completedAt)
	})
	if err != nil {
		return 0, err
	}
	return earningAmount, nil
}
