package models

import (
	"time"

	"github.com/google/uuid"
)

type DiscountRule struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	PartnerID uuid.UUID  `json:"partner_id" db:"partner_id"`
	BranchID  *uuid.UUID `json:"branch_id" db:"branch_id"` // nil => general
	Name      string     `json:"name" db:"name"`
	// Percentage discounts use Percent, fixed discounts use Amount.
	DiscountType string    `json:"discount_type" db:"discount_type"` // percent, fixed
	Percent      float64   `json:"percent" db:"percent"`
	Amount       float64   `json:"amount" db:"amount"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func (d *DiscountRule) Scope() string { return CatalogScope(d.BranchID) }
