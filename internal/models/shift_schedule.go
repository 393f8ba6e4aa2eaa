package models

import (
	"time"

	"github.com/google/uuid"
)

type ShiftSchedule struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PartnerID uuid.UUID `json:"partner_id" db:"partner_id"`
	BranchID  uuid.UUID `json:"branch_id" db:"branch_id"`
	Name      string    `json:"name" db:"name"`
	StartTime string    `json:"start_time" db:"start_time"` // HH:MM
	EndTime   string    `json:"end_time" db:"end_time"`     // HH:MM
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
