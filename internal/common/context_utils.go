package common

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	PartnerIDKey contextKey = "partner_id"
	BranchIDKey  contextKey = "branch_id"
	RoleKey      contextKey = "role"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetPartnerIDFromContext extracts the partner ID from the request context.
// Platform operators carry no partner and get ok=false.
func GetPartnerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	partnerID, ok := ctx.Value(PartnerIDKey).(uuid.UUID)
	return partnerID, ok
}

// GetBranchIDFromContext extracts the branch ID from the request context.
// Only branch admin tokens carry one.
func GetBranchIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	branchID, ok := ctx.Value(BranchIDKey).(uuid.UUID)
	return branchID, ok
}

// GetRoleFromContext extracts the dashboard role from the request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// ValidateUUID validates UUID path/query parameters
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	if strings.TrimSpace(idStr) == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid UUID format", fieldName)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// ValidatePhone validates numeric-only phone fields
func ValidatePhone(phone, fieldName string) error {
	if strings.TrimSpace(phone) == "" {
		return nil // phone is optional
	}
	if !digitsOnly.MatchString(phone) {
		return fmt.Errorf("%s must contain digits only", fieldName)
	}
	if len(phone) < 8 || len(phone) > 15 {
		return fmt.Errorf("%s must be between 8 and 15 digits", fieldName)
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

// ValidatePin validates a numeric 4-6 digit operator PIN
func ValidatePin(pin string) error {
	if !digitsOnly.MatchString(pin) {
		return fmt.Errorf("pin must contain digits only")
	}
	if len(pin) < 4 || len(pin) > 6 {
		return fmt.Errorf("pin must be between 4 and 6 digits")
	}
	return nil
}

// ValidatePositiveFloat validates positive float values with upper bounds
func ValidatePositiveFloat(value float64, fieldName string, maxValue float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > maxValue {
		return fmt.Errorf("%s cannot exceed %.2f", fieldName, maxValue)
	}
	return nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
