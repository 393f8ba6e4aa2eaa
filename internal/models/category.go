package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	PartnerID uuid.UUID  `json:"partner_id" db:"partner_id"`
	BranchID  *uuid.UUID `json:"branch_id" db:"branch_id"` // nil => general
	Name      string     `json:"name" db:"name"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

func (c *Category) Scope() string { return CatalogScope(c.BranchID) }
