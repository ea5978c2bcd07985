package models

import (
	"time"

	"github.com/google/uuid"
)

// Click is an immutable attribution event. It carries no monetary value;
// it exists for reporting only.
type Click struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PartnerID    uuid.UUID `gorm:"not null;index" json:"partner_id"`
	IPAddress    string    `gorm:"size:64" json:"ip_address"`
	UserAgent    string    `gorm:"size:1024" json:"user_agent"`
	FromCurrency string    `gorm:"size:10" json:"from_currency"`
	ToCurrency   string    `gorm:"size:10" json:"to_currency"`
	City         string    `gorm:"size:100" json:"city"`

	Partner Partner `gorm:"foreignkey:PartnerID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
