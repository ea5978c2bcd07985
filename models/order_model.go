package models

import (
	"time"

	"github.com/google/uuid"
)

// Order status is "pending" until completion and "completed" thereafter.
// Completed is terminal; there is no refund or reversal path.
type Order struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PartnerID   *uuid.UUID `gorm:"index" json:"partner_id,omitempty"`
	OrderNumber string     `gorm:"size:20;not null;unique" json:"order_number"`

	FromCurrency string  `gorm:"size:10;not null" json:"from_currency"`
	ToCurrency   string  `gorm:"size:10;not null" json:"to_currency"`
	FromAmount   float64 `gorm:"type:numeric(20,8);not null" json:"from_amount"`
	ToAmount     float64 `gorm:"type:numeric(20,8);not null" json:"to_amount"`
	ExchangeRate float64 `gorm:"type:numeric(20,8);not null" json:"exchange_rate"`
	MarginProfit float64 `gorm:"type:numeric(12,2);not null;default:0.00" json:"margin_profit"`

	CustomerEmail   string `gorm:"size:255" json:"customer_email"`
	CustomerContact string `gorm:"size:255" json:"customer_contact"`
	WalletAddress   string `gorm:"size:255" json:"wallet_address"`
	CardNumber      string `gorm:"size:32" json:"card_number"`

	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Partner *Partner `gorm:"foreignkey:PartnerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
