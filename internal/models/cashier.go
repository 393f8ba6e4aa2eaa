package models

import (
	"time"

	"github.com/google/uuid"
)

// CashierAccount is a username/password login for the POS terminal.
type CashierAccount struct {
	ID           uuid.UUID `json:"id" db:"id"`
	PartnerID    uuid.UUID `json:"partner_id" db:"partner_id"`
	BranchID     uuid.UUID `json:"branch_id" db:"branch_id"`
	FullName     string    `json:"full_name" db:"full_name"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// PinOperator is a cashier identity authenticated by a short numeric PIN
// instead of username/password.
type PinOperator struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PartnerID uuid.UUID `json:"partner_id" db:"partner_id"`
	BranchID  uuid.UUID `json:"branch_id" db:"branch_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	PinHash   string    `json:"-" db:"pin_hash"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
