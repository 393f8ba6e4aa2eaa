package models

import (
	"time"

	"github.com/google/uuid"
)

// Partner is the root tenant: one business (mitra) owning branches,
// staff, catalog entries and licenses.
type Partner struct {
	ID           uuid.UUID `json:"id" db:"id"`
	BusinessName string    `json:"business_name" db:"business_name"`
	OwnerName    string    `json:"owner_name" db:"owner_name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Status       string    `json:"status" db:"status"` // active, suspended
	JoinedAt     time.Time `json:"joined_at" db:"joined_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

const (
	PartnerStatusActive    = "active"
	PartnerStatusSuspended = "suspended"
)
