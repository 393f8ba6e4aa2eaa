package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Catalog scope values for products, categories and discount rules.
// A nil branch_id means the record is "general" and visible to every
// branch of the partner; a non-nil branch_id scopes it to that branch.
const (
	ScopeGeneral = "general"
	ScopeLocal   = "local"
)

// CatalogScope classifies a nullable branch reference into the
// general/local partition. The two outcomes are disjoint and exhaustive.
func CatalogScope(branchID *uuid.UUID) string {
	if branchID == nil {
		return ScopeGeneral
	}
	return ScopeLocal
}

// CheckScopeWrite rejects writes that cross the catalog scope boundary:
// branch actors touch only their own local records, owner actors touch
// only general ones.
func CheckScopeWrite(actorBranchID, recordBranchID *uuid.UUID) error {
	if actorBranchID == nil {
		if recordBranchID != nil {
			return errors.New("local records are managed by their branch")
		}
		return nil
	}
	if recordBranchID == nil {
		return errors.New("general records are managed by the owner")
	}
	if *actorBranchID != *recordBranchID {
		return errors.New("record belongs to another branch")
	}
	return nil
}

type Product struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	PartnerID  uuid.UUID  `json:"partner_id" db:"partner_id"`
	BranchID   *uuid.UUID `json:"branch_id" db:"branch_id"` // nil => general
	CategoryID *uuid.UUID `json:"category_id" db:"category_id"`
	Name       string     `json:"name" db:"name"`
	SKU        string     `json:"sku" db:"sku"`
	Price      float64    `json:"price" db:"price"`
	ImageKey   *string    `json:"image_key" db:"image_key"` // object storage key
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// Scope reports whether the product is general or branch-local.
func (p *Product) Scope() string { return CatalogScope(p.BranchID) }
