package services

import (
	"errors"
	"time"

	"github.com/dkoval85/bitchange_backend/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound covers unknown partners, unknown partner codes and unknown
	// orders. It also covers an already-completed order on completion: a
	// caller cannot tell the two apart, so re-completion is rejected
	// identically to a never-existing order.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientFunds means a payout amount exceeds the partner's
	// current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBelowMinimumPayout means the requested amount is under the
	// configured payout threshold. Detected before any store interaction.
	ErrBelowMinimumPayout = errors.New("payout amount is below the minimum")

	// ErrEmailTaken means a partner with that email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// LedgerView is the read side of a ledger transaction. Every method sees
// the same consistent snapshot of the store.
type LedgerView interface {
	PartnerByID(id uuid.UUID) (*models.Partner, error)
	PartnerByCode(code string) (*models.Partner, error)
	PartnerByEmail(email string) (*models.Partner, error)
	PartnerCodeExists(code string) (bool, error)
	OrderNumberExists(number string) (bool, error)

	ClickCount(partnerID uuid.UUID) (int64, error)
	CompletedOrderStats(partnerID uuid.UUID) (count int64, volume float64, err error)
	TotalEarned(partnerID uuid.UUID) (float64, error)
	TotalPaid(partnerID uuid.UUID) (float64, error)
	RecentEarnings(partnerID uuid.UUID, limit int) ([]models.Earning, error)
	RecentPayouts(partnerID uuid.UUID, limit int) ([]models.Payout, error)
}

// LedgerTx adds the write side. PartnerForUpdate and PendingOrderForUpdate
// take a row lock held until the transaction ends, so a balance or status
// check stays valid through the mutation that follows it.
type LedgerTx interface {
	LedgerView

	PartnerForUpdate(id uuid.UUID) (*models.Partner, error)
	PendingOrderForUpdate(id uuid.UUID) (*models.Order, error)

	CreatePartner(partner *models.Partner) error
	CreateClick(click *models.Click) error
	CreateOrder(order *models.Order) error
	CreateEarning(earning *models.Earning) error
	CreatePayout(payout *models.Payout) error

	CreditBalance(partnerID uuid.UUID, amount float64) error
	DebitBalance(partnerID uuid.UUID, amount float64) error
	MarkOrderCompleted(orderID uuid.UUID, completedAt time.Time) error
	UpdatePassword(partnerID uuid.UUID, passwordHash string) error
}

// Ledger is the durable record of partners, clicks, orders, earnings and
// payouts. Update runs fn as one all-or-nothing transaction: any error rolls
// every write back. View runs fn against a single consistent snapshot.
type Ledger interface {
	View(fn func(v LedgerView) error) error
	Update(fn func(tx LedgerTx) error) error
}
