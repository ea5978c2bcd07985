package models

import (
	"time"

	"github.com/google/uuid"
)

// Payout records a withdrawal request. The balance is debited when the row
// is created; status moves from "pending" to "completed" or "failed" by the
// back-office process, which also stamps ProcessedAt.
type Payout struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PartnerID uuid.UUID `gorm:"not null;index" json:"partner_id"`

	Amount         float64 `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod  string  `gorm:"size:50;not null" json:"payment_method"`
	PaymentDetails string  `gorm:"type:text;not null" json:"payment_details"`

	Status      string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`

	Partner Partner `gorm:"foreignkey:PartnerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
