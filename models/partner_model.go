package models

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"size:255;not null;unique" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	PartnerCode    string  `gorm:"size:16;not null;unique" json:"partner_code"`
	Balance        float64 `gorm:"type:numeric(12,2);not null;default:0.00" json:"balance"`
	CommissionRate float64 `gorm:"type:numeric(5,2);not null;default:2.00" json:"commission_rate"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
