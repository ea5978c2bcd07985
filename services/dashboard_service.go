package services

import (
	"github.com/dkoval85/bitchange_backend/models"
	"github.com/google/uuid"
)

// recentListLimit caps earnings and payouts listings at the 100 most
// recent records.
const recentListLimit = 100

type PartnerStats struct {
	PartnerCode     string  `json:"partner_code"`
	Balance         float64 `json:"balance"`
	CommissionRate  float64 `json:"commission_rate"`
	TotalClicks     int64   `json:"total_clicks"`
	CompletedOrders int64   `json:"completed_orders"`
	TotalVolume     float64 `json:"total_volume"`
	TotalEarned     float64 `json:"total_earned"`
	TotalPaid       float64 `json:"total_paid"`
}

type DashboardService struct {
	ledger Ledger
}

func NewDashboardService(ledger Ledger) *DashboardService {
	return &DashboardService{ledger: ledger}
}

// Stats aggregates one partner's activity. All reads happen inside a single
// view transaction, so the numbers describe one snapshot of the ledger and
// never an interleaving of concurrent writes.
func (s *DashboardService) Stats(partnerID uuid.UUID) (*PartnerStats, error) {
	var stats PartnerStats
	err := s.ledger.View(func(v LedgerView) error {
		partner, err := v.PartnerByID(partnerID)
		if err != nil {
			return err
		}
		stats.PartnerCode = partner.PartnerCode
		stats.Balance = partner.Balance
		stats.CommissionRate = partner.CommissionRate

		if stats.TotalClicks, err = v.ClickCount(partnerID); err != nil {
			return err
		}
		if stats.CompletedOrders, stats.TotalVolume, err = v.CompletedOrderStats(partnerID); err != nil {
			return err
		}
		if stats.TotalEarned, err = v.TotalEarned(partnerID); err != nil {
			return err
		}
		stats.TotalPaid, err = v.TotalPaid(partnerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *DashboardService) Earnings(partnerID uuid.UUID) ([]models.Earning, error) {
	var earnings []models.Earning
	err := s.ledger.View(func(v LedgerView) error {
		var err error
		earnings, err = v.RecentEarnings(partnerID, recentListLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return earnings, nil
}

func (s *DashboardService) Payouts(partnerID uuid.UUID) ([]models.Payout, error) {
	var payouts []models.Payout
	err := s.ledger.View(func(v LedgerView) error {
		var err error
		payouts, err = v.RecentPayouts(partnerID, recentListLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payouts, nil
}
