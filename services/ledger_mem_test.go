package services

import (
	"sort"
	"sync"
	"time"

	"github.com/dkoval85/bitchange_backend/models"
	"github.com/google/uuid"
)

// memLedger is an in-memory Ledger for tests. A single mutex serializes
// transactions, modeling the row locks the Postgres implementation takes;
// Update works on a deep copy and commits only on success, so a failed
// transaction leaves no partial writes, the same contract as a rollback.
type memLedger struct {
	mu    sync.Mutex
	state memState
}

type memState struct {
	partners map[uuid.UUID]*models.Partner
	orders   map[uuid.UUID]*models.Order
	clicks   []models.Click
	earnings []models.Earning
	payouts  []models.Payout
}

func newMemLedger() *memLedger {
	return &memLedger{
		state: memState{
			partners: make(map[uuid.UUID]*models.Partner),
			orders:   make(map[uuid.UUID]*models.Order),
		},
	}
}

func (s *memState) clone() *memState {
	c := &memState{
		partners: make(map[uuid.UUID]*models.Partner, len(s.partners)),
		orders:   make(map[uuid.UUID]*models.Order, len(s.orders)),
	}
	for id, p := range s.partners {
		cp := *p
		c.partners[id] = &cp
	}
	for id, o := range s.orders {
		co := *o
		c.orders[id] = &co
	}
	c.clicks = append([]models.Click(nil), s.clicks...)
	c.earnings = append([]models.Earning(nil), s.earnings...)
	c.payouts = append([]models.Payout(nil), s.payouts...)
	return c
}

func (l *memLedger) View(fn func(v LedgerView) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(&memTx{state: &l.state})
}

func (l *memLedger) Update(fn func(tx LedgerTx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	work := l.state.clone()
	if err := fn(&memTx{state: work}); err != nil {
		return err
	}
	l.state = *work
	return nil
}

// seedPartner inserts a partner directly, bypassing registration.
func (l *memLedger) seedPartner(rate, balance float64) *models.Partner {
	l.mu.Lock()
	defer l.mu.Unlock()
	partner := &models.Partner{
		ID:             uuid.New(),
		Email:          uuid.NewString() + "@example.com",
		PasswordHash:   "x",
		PartnerCode:    "BC" + uuid.NewString()[:12],
		Balance:        balance,
		CommissionRate: rate,
		CreatedAt:      time.Now(),
	}
	l.state.partners[partner.ID] = partner
	return partner
}

func (l *memLedger) partnerBalance(id uuid.UUID) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.partners[id].Balance
}

func (l *memLedger) earningsFor(id uuid.UUID) []models.Earning {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Earning
	for _, e := range l.state.earnings {
		if e.PartnerID == id {
			out = append(out, e)
		}
	}
	return out
}

func (l *memLedger) payoutsFor(id uuid.UUID) []models.Payout {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.Payout
	for _, p := range l.state.payouts {
		if p.PartnerID == id {
			out = append(out, p)
		}
	}
	return out
}

// balanceInvariantHolds checks balance == sum(earnings) − sum(payouts) for
// one partner against a starting balance.
func (l *memLedger) balanceInvariantHolds(id uuid.UUID, opening float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	expected := opening
	for _, e := range l.state.earnings {
		if e.PartnerID == id {
			expected += e.Amount
		}
	}
	for _, p := range l.state.payouts {
		if p.PartnerID == id {
			expected -= p.Amount
		}
	}
	return l.state.partners[id].Balance == expected
}

type memTx struct {
	state *memState
}

func (t *memTx) PartnerByID(id uuid.UUID) (*models.Partner, error) {
	partner, ok := t.state.partners[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *partner
	return &cp, nil
}

func (t *memTx) PartnerByCode(code string) (*models.Partner, error) {
	for _, partner := range t.state.partners {
		if partner.PartnerCode == code {
			cp := *partner
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (t *memTx) PartnerByEmail(email string) (*models.Partner, error) {
	for _, partner := range t.state.partners {
		if partner.Email == email {
			cp := *partner
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (t *memTx) PartnerCodeExists(code string) (bool, error) {
	_, err := t.PartnerByCode(code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (t *memTx) OrderNumberExists(number string) (bool, error) {
	for _, order := range t.state.orders {
		if order.OrderNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) ClickCount(partnerID uuid.UUID) (int64, error) {
	var count int64
	for _, click := range t.state.clicks {
		if click.PartnerID == partnerID {
			count++
		}
	}
	return count, nil
}

func (t *memTx) CompletedOrderStats(partnerID uuid.UUID) (int64, float64, error) {
	var count int64
	var volume float64
	for _, order := range t.state.orders {
		if order.PartnerID != nil && *order.PartnerID == partnerID && order.Status == "completed" {
			count++
			volume += order.ToAmount
		}
	}
	return count, volume, nil
}

func (t *memTx) TotalEarned(partnerID uuid.UUID) (float64, error) {
	var total float64
	for _, e := range t.state.earnings {
		if e.PartnerID == partnerID {
			total += e.Amount
		}
	}
	return total, nil
}

func (t *memTx) TotalPaid(partnerID uuid.UUID) (float64, error) {
	var total float64
	for _, p := range t.state.payouts {
		if p.PartnerID == partnerID && p.Status == "completed" {
			total += p.Amount
		}
	}
	return total, nil
}

func (t *memTx) RecentEarnings(partnerID uuid.UUID, limit int) ([]models.Earning, error) {
	var out []models.Earning
	for _, e := range t.state.earnings {
		if e.PartnerID == partnerID {
			if order, ok := t.state.orders[e.OrderID]; ok {
				e.Order = *order
			}
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) RecentPayouts(partnerID uuid.UUID, limit int) ([]models.Payout, error) {
	var out []models.Payout
	for _, p := range t.state.payouts {
		if p.PartnerID == partnerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (t *memTx) PartnerForUpdate(id uuid.UUID) (*models.Partner, error) {
	return t.PartnerByID(id)
}

func (t *memTx) PendingOrderForUpdate(id uuid.UUID) (*models.Order, error) {
	order, ok := t.state.orders[id]
	if !ok || order.Status != "pending" {
		return nil, ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (t *memTx) CreatePartner(partner *models.Partner) error {
	if _, err := t.PartnerByEmail(partner.Email); err == nil {
		return ErrEmailTaken
	}
	if partner.ID == uuid.Nil {
		partner.ID = uuid.New()
	}
	partner.CreatedAt = time.Now()
	cp := *partner
	t.state.partners[partner.ID] = &cp
	return nil
}

func (t *memTx) CreateClick(click *models.Click) error {
	if click.ID == uuid.Nil {
		click.ID = uuid.New()
	}
	click.CreatedAt = time.Now()
	t.state.clicks = append(t.state.clicks, *click)
	return nil
}

func (t *memTx) CreateOrder(order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	cp := *order
	t.state.orders[order.ID] = &cp
	return nil
}

func (t *memTx) CreateEarning(earning *models.Earning) error {
	if earning.ID == uuid.Nil {
		earning.ID = uuid.New()
	}
	t.state.earnings = append(t.state.earnings, *earning)
	return nil
}

func (t *memTx) CreatePayout(payout *models.Payout) error {
	if payout.ID == uuid.Nil {
		payout.ID = uuid.New()
	}
	payout.CreatedAt = time.Now()
	t.state.payouts = append(t.state.payouts, *payout)
	return nil
}

func (t *memTx) CreditBalance(partnerID uuid.UUID, amount float64) error {
	partner, ok := t.state.partners[partnerID]
	if !ok {
		return ErrNotFound
	}
	partner.Balance += amount
	return nil
}

func (t *memTx) DebitBalance(partnerID uuid.UUID, amount float64) error {
	partner, ok := t.state.partners[partnerID]
	if !ok {
		return ErrNotFound
	}
	partner.Balance -= amount
	return nil
}

func (t *memTx) MarkOrderCompleted(orderID uuid.UUID, completedAt time.Time) error {
	order, ok := t.state.orders[orderID]
	if !ok || order.Status != "pending" {
		return ErrNotFound
	}
	order.Status = "completed"
	order.CompletedAt = &completedAt
	return nil
}

func (t *memTx) UpdatePassword(partnerID uuid.UUID, passwordHash string) error {
	partner, ok := t.state.partners[partnerID]
	if !ok {
		return ErrNotFound
	}
	partner.PasswordHash = passwordHash
	return nil
}
