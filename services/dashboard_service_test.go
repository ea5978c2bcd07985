package services

import (
	"testing"
	"time"

	"github.com/dkoval85/bitchange_backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsAggregatesOnePartner(t *testing.T) {
	ledger := newMemLedger()
	partner := ledger.seedPartner(2.00, 0)
	other := ledger.seedPartner(3.00, 0)

	tracking := NewTrackingService(ledger)
	commission := NewCommissionService(ledger)

	for i := 0; i < 4; i++ {
		_, err := tracking.TrackClick(TrackClickInput{PartnerCode: partner.PartnerCode})
		require.NoError(t, err)
	}
	_, err := tracking.TrackClick(TrackClickInput{PartnerCode: other.PartnerCode})
	require.NoError(t, err)

	completed := pendingOrder(t, ledger, &partner.ID, 500)
	_, err = commission.CompleteOrder(completed.ID)
	require.NoError(t, err)

	// A still-pending order contributes nothing to completed stats.
	pendingOrder(t, ledger, &partner.ID, 700)

	stats, err := NewDashboardService(ledger).Stats(partner.ID)
	require.NoError(t, err)

	assert.Equal(t, partner.PartnerCode, stats.PartnerCode)
	assert.Equal(t, 2.00, stats.CommissionRate)
	assert.EqualValues(t, 4, stats.TotalClicks)
	assert.EqualValues(t, 1, stats.CompletedOrders)
	assert.Equal(t, 92500.0, stats.TotalVolume)
	assert.Equal(t, 10.00, stats.TotalEarned)
	assert.Equal(t, 10.00, stats.Balance)
}

func TestStatsCountsOnlyCompletedPayouts(t *testing.T) {
	ledger := newMemLedger()
	partner := ledger.seedPartner(2.00, 5000)

	payouts := NewPayoutService(ledger, testMinimumPayout)
	_, err := payouts.RequestPayout(RequestPayoutInput{
		PartnerID:      partner.ID,
		Amount:         1500,
		PaymentMethod:  "card",
		PaymentDetails: "details",
	})
	require.NoError(t, err)

	// Pending payouts already debit the balance but are not yet paid out.
	stats, err := NewDashboardService(ledger).Stats(partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3500.0, stats.Balance)
	assert.Equal(t, 0.0, stats.TotalPaid)

	ledger.mu.Lock()
	ledger.state.payouts[0].Status = "completed"
	ledger.mu.Unlock()

	stats, err = NewDashboardService(ledger).Stats(partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, stats.TotalPaid)
}

func TestStatsUnknownPartner(t *testing.T) {
	ledger := newMemLedger()
	_, err := NewDashboardService(ledger).Stats(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEarningsNewestFirstWithOrderNumber(t *testing.T) {
	ledger := newMemLedger()
	partner := ledger.seedPartner(2.00, 0)

	var orders []*models.Order
	for i := 0; i < 3; i++ {
		orders = append(orders, pendingOrder(t, ledger, &partner.ID, float64(100*(i+1))))
	}

	// Backdate earnings so ordering is deterministic.
	commission := NewCommissionService(ledger)
	for _, order := range orders {
		_, err := commission.CompleteOrder(order.ID)
		require.NoError(t, err)
	}
	ledger.mu.Lock()
	base := time.Now()
	for i := range ledger.state.earnings {
		ledger.state.earnings[i].EarnedAt = base.Add(time.Duration(i) * time.Minute)
	}
	ledger.mu.Unlock()

	earnings, err := NewDashboardService(ledger).Earnings(partner.ID)
	require.NoError(t, err)
	require.Len(t, earnings, 3)

	assert.Equal(t, orders[2].ID, earnings[0].OrderID)
	assert.Equal(t, orders[2].OrderNumber, earnings[0].Order.OrderNumber)
	assert.True(t, earnings[0].EarnedAt.After(earnings[1].EarnedAt))
	assert.True(t, earnings[1].EarnedAt.After(earnings[2].EarnedAt))
}

func TestPayoutListIsCapped(t *testing.T) {
	ledger := newMemLedger()
	partner := ledger.seedPartner(2.00, 0)

	ledger.mu.Lock()
	for i := 0; i < recentListLimit+20; i++ {
		ledger.state.payouts = append(ledger.state.payouts, models.Payout{
			ID:        uuid.New(),
			PartnerID: partner.ID,
			Amount:    1000,
			Status:    "pending",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
	}
	ledger.mu.Unlock()

	payouts, err := NewDashboardService(ledger).Payouts(partner.ID)
	require.NoError(t, err)
	assert.Len(t, payouts, recentListLimit)
}
