package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	VoidStatusPending  = "pending"
	VoidStatusApproved = "approved"
	VoidStatusRejected = "rejected"
)

// VoidRequest is a cashier-initiated request to cancel a completed
// transaction, requiring admin approval.
type VoidRequest struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PartnerID     uuid.UUID `json:"partner_id" db:"partner_id"`
	BranchID      uuid.UUID `json:"branch_id" db:"branch_id"`
	TransactionID uuid.UUID `json:"transaction_id" db:"transaction_id"`
	CashierName   string    `json:"cashier_name" db:"cashier_name"`
	Reason        string    `json:"reason" db:"reason"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
