package models

import (
	"time"

	"github.com/google/uuid"
)

// LicenseStatus is derived, never stored: a license is active while a
// device holds it, assigned once bound to a branch, and pending otherwise.
type LicenseStatus string

const (
	LicenseActive   LicenseStatus = "active"
	LicenseAssigned LicenseStatus = "assigned"
	LicensePending  LicenseStatus = "pending"
)

type License struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	PartnerID      uuid.UUID  `json:"partner_id" db:"partner_id"`
	ActivationCode string     `json:"activation_code" db:"activation_code"`
	DeviceID       string     `json:"device_id" db:"device_id"` // empty until a device activates
	DeviceName     string     `json:"device_name" db:"device_name"`
	BranchID       *uuid.UUID `json:"branch_id" db:"branch_id"`
	// Populated from DeriveStatus before the record leaves the service layer.
	Status    LicenseStatus `json:"license_status" db:"-"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// DeriveStatus is total and mutually exclusive: device binding wins over
// branch assignment, and a license with neither is pending.
func (l *License) DeriveStatus() LicenseStatus {
	switch {
	case l.DeviceID != "":
		return LicenseActive
	case l.BranchID != nil:
		return LicenseAssigned
	default:
		return LicensePending
	}
}
