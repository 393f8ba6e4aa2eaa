package models

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionPlan struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	DurationDays int       `json:"duration_days" db:"duration_days"`
	MaxBranches  int       `json:"max_branches" db:"max_branches"`
	MaxDevices   int       `json:"max_devices" db:"max_devices"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

type PartnerSubscription struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PartnerID uuid.UUID `json:"partner_id" db:"partner_id"`
	PlanID    uuid.UUID `json:"plan_id" db:"plan_id"`
	Status    string    `json:"status" db:"status"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Order payment states. Only pending_payment orders may transition, and
// approved/rejected are terminal.
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusApproved       = "approved"
	OrderStatusRejected       = "rejected"
)

// SubscriptionOrder is a purchase request for a plan. Approving it creates
// (or extends) the partner's subscription.
type SubscriptionOrder struct {
	ID            uuid.UUID `json:"id" db:"id"`
	PartnerID     uuid.UUID `json:"partner_id" db:"partner_id"`
	PlanID        uuid.UUID `json:"plan_id" db:"plan_id"`
	Amount        float64   `json:"amount" db:"amount"`
	PaymentStatus string    `json:"payment_status" db:"payment_status"`
	ProofImageKey *string   `json:"proof_image_key" db:"proof_image_key"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
