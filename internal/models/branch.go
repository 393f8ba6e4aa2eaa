package models

import (
	"time"

	"github.com/google/uuid"
)

type Branch struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PartnerID    uuid.UUID `json:"partner_id" db:"partner_id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	Phone        string    `json:"phone" db:"phone"`
	TaxRate      float64   `json:"tax_rate" db:"tax_rate"`           // percentage, e.g. 11.0
	TaxInclusive bool      `json:"tax_inclusive" db:"tax_inclusive"` // prices already include tax
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
