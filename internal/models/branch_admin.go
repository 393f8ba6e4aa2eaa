package models

import (
	"time"

	"github.com/google/uuid"
)

// BranchAdmin is a username/password identity scoped to one branch.
type BranchAdmin struct {
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
