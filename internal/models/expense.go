package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PartnerID     uuid.UUID `json:"partner_id" db:"partner_id"`
	BranchID      uuid.UUID `json:"branch_id" db:"branch_id"`
	Description   string    `json:"description" db:"description"`
	Amount        float64   `json:"amount" db:"amount"`
	ExpenseDate   time.Time `json:"expense_date" db:"expense_date"`
	ProofImageKey *string   `json:"proof_image_key" db:"proof_image_key"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
