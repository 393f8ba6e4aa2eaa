package models

import (
	"time"

	"github.com/google/uuid"
)

// Dashboard roles. Each authenticated user carries exactly one.
const (
	RolePlatformAdmin = "admin_platform" // platform operator
	RoleSuperAdmin    = "super_admin"    // mitra / business owner
	RoleBranchAdmin   = "branch_admin"   // single-branch operations
)

// DashboardPath maps a role to the dashboard root clients route to after
// login. Unrecognized roles return ok=false and must not authenticate.
func DashboardPath(role string) (string, bool) {
	switch role {
	case RolePlatformAdmin:
		return "/platform", true
	case RoleSuperAdmin:
		return "/mitra", true
	case RoleBranchAdmin:
		return "/branch", true
	default:
		return "", false
	}
}

// User is an administrative login. PartnerID is nil for platform
// operators; BranchID is set only for branch admins.
type User struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	PartnerID     *uuid.UUID `json:"partner_id" db:"partner_id"`
	BranchID      *uuid.UUID `json:"branch_id" db:"branch_id"`
	Username      string     `json:"username" db:"username"`
	Email         string     `json:"email" db:"email"`
	PasswordHash  string     `json:"-" db:"password_hash"`
	Role          string     `json:"role" db:"role"`
	EmailVerified bool       `json:"email_verified" db:"email_verified"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
