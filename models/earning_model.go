package models

import (
	"time"

	"github.com/google/uuid"
)

// Earning is created atomically with its order's completion and never
// mutated. The unique index on OrderID backs the one-earning-per-order
// invariant at the schema level.
type Earning struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PartnerID uuid.UUID `gorm:"not null;index" json:"partner_id"`
	OrderID   uuid.UUID `gorm:"not null;unique" json:"order_id"`

	Amount         float64 `gorm:"type:numeric(12,2);not null" json:"amount"`
	CommissionRate float64 `gorm:"type:numeric(5,2);not null" json:"commission_rate"`
	OrderAmount    float64 `gorm:"type:numeric(20,8);not null" json:"order_amount"`
	OrderDirection string  `gorm:"size:32" json:"order_direction"`

	EarnedAt time.Time `gorm:"not null;index" json:"earned_at"`

	Partner Partner `gorm:"foreignkey:PartnerID" json:"-"`
	Order   Order   `gorm:"foreignkey:OrderID" json:"-"`
}
