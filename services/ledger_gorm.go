package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/dkoval85/bitchange_backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedger is the production Ledger on GORM/Postgres. Row locks are taken
// with SELECT ... FOR UPDATE and balance arithmetic happens in the database,
// never on values read into Go.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

// View runs at repeatable read so every query in the callback sees one
// snapshot. At the default read committed, a completion committing between
// two aggregate queries could surface a balance and a total_earned taken
// from different states.
func (l *GormLedger) View(fn func(v LedgerView) error) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

func (l *GormLedger) Update(fn func(tx LedgerTx) error) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) PartnerByID(id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	if err := t.db.First(&partner, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &partner, nil
}

func (t *gormTx) PartnerByCode(code string) (*models.Partner, error) {
	var partner models.Partner
	if err := t.db.First(&partner, "partner_code = ?", code).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &partner, nil
}

func (t *gormTx) PartnerByEmail(email string) (*models.Partner, error) {
	var partner models.Partner
	if err := t.db.First(&partner, "email = ?", email).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &partner, nil
}

func (t *gormTx) PartnerCodeExists(code string) (bool, error) {
	var count int64
	err := t.db.Model(&models.Partner{}).Where("partner_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (t *gormTx) OrderNumberExists(number string) (bool, error) {
	var count int64
	err := t.db.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error
	return count > 0, err
}

func (t *gormTx) ClickCount(partnerID uuid.UUID) (int64, error) {
	var count int64
	err := t.db.Model(&models.Click{}).Where("partner_id = ?", partnerID).Count(&count).Error
	return count, err
}

func (t *gormTx) CompletedOrderStats(partnerID uuid.UUID) (int64, float64, error) {
	var result struct {
		Count  int64
		Volume float64
	}
	err := t.db.Model(&models.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(to_amount), 0) AS volume").
		Where("partner_id = ? AND status = ?", partnerID, "completed").
		Scan(&result).Error
	return result.Count, result.Volume, err
}

func (t *gormTx) TotalEarned(partnerID uuid.UUID) (float64, error) {
	var total float64
	err := t.db.Model(&models.Earning{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("partner_id = ?", partnerID).
		Scan(&total).Error
	return total, err
}

func (t *gormTx) TotalPaid(partnerID uuid.UUID) (float64, error) {
	var total float64
	err := t.db.Model(&models.Payout{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("partner_id = ? AND status = ?", partnerID, "completed").
		Scan(&total).Error
	return total, err
}

func (t *gormTx) RecentEarnings(partnerID uuid.UUID, limit int) ([]models.Earning, error) {
	var earnings []models.Earning
	err := t.db.Preload("Order").
		Where("partner_id = ?", partnerID).
		Order("earned_at DESC").
		Limit(limit).
		Find(&earnings).Error
	return earnings, err
}

func (t *gormTx) RecentPayouts(partnerID uuid.UUID, limit int) ([]models.Payout, error) {
	var payouts []models.Payout
	err := t.db.Where("partner_id = ?", partnerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&payouts).Error
	return payouts, err
}

func (t *gormTx) PartnerForUpdate(id uuid.UUID) (*models.Partner, error) {
	var partner models.Partner
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&partner, "id = ?", id).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &partner, nil
}

func (t *gormTx) PendingOrderForUpdate(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ? AND status = ?", id, "pending").Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &order, nil
}

func (t *gormTx) CreatePartner(partner *models.Partner) error {
	if err := t.db.Create(partner).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (t *gormTx) CreateClick(click *models.Click) error {
	return t.db.Create(click).Error
}

func (t *gormTx) CreateOrder(order *models.Order) error {
	return t.db.Create(order).Error
}

func (t *gormTx) CreateEarning(earning *models.Earning) error {
	return t.db.Create(earning).Error
}

func (t *gormTx) CreatePayout(payout *models.Payout) error {
	return t.db.Create(payout).Error
}

func (t *gormTx) CreditBalance(partnerID uuid.UUID, amount float64) error {
	result := t.db.Model(&models.Partner{}).
		Where("id = ?", partnerID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *gormTx) DebitBalance(partnerID uuid.UUID, amount float64) error {
	result := t.db.Model(&models.Partner{}).
		Where("id = ?", partnerID).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *gormTx) MarkOrderCompleted(orderID uuid.UUID, completedAt time.Time) error {
	result := t.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, "pending").
		Updates(map[string]interface{}{
			"status":       "completed",
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (t *gormTx) UpdatePassword(partnerID uuid.UUID, passwordHash string) error {
	result := t.db.Model(&models.Partner{}).
		Where("id = ?", partnerID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
