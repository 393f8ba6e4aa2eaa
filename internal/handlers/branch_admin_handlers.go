package handlers

import (
	"fmt"
	"net/http"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"
	"kasirhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BranchAdminHandlers manages branch admin accounts for the owner
// dashboard.
type BranchAdminHandlers struct {
	adminRepo  repositories.BranchAdminRepository
	branchRepo repositories.BranchRepository
	authSvc    services.AuthService
}

func NewBranchAdminHandlers(adminRepo repositories.BranchAdminRepository, branchRepo repositories.BranchRepository, authSvc services.AuthService) *BranchAdminHandlers {
	return &BranchAdminHandlers{
		adminRepo:  adminRepo,
		branchRepo: branchRepo,
		authSvc:    authSvc,
	}
}

// passwordUpdate resolves the password fields of an edit form: both empty
// keeps the stored hash (nil), exactly one filled is an error, both
// filled must match.
func passwordUpdate(password, confirm string) (*string, error) {
	if password == "" && confirm == "" {
		return nil, nil
	}
	if password == "" || confirm == "" {
		return nil, fmt.Errorf("fill both password fields to change the password")
	}
	if password != confirm {
		return nil, fmt.Errorf("passwords do not match")
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, err
	}
	return &password, nil
}

// CreateBranchAdmin handles POST /branch-admins
func (h *BranchAdminHandlers) CreateBranchAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		BranchID        string `json:"branch_id"`
		FullName        string `json:"full_name"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return common.SendValidationError(c, "full_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}
	if req.Password != req.ConfirmPassword {
		return common.SendValidationError(c, "password", "passwords do not match")
	}
	if err := common.ValidatePassword(req.Password); err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	branchID, err := common.ValidateUUID(req.BranchID, "branch_id")
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}
	if _, err := h.branchRepo.GetByID(ctx, partnerID, branchID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Branch not found")
	}

	if _, err := h.adminRepo.GetByUsername(ctx, req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Username is already taken")
	}

	passwordHash, err := h.authSvc.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	admin := &models.BranchAdmin{
		ID:           uuid.New(),
		PartnerID:    partnerID,
		BranchID:     branchID,
		FullName:     req.FullName,
		Username:     req.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := h.adminRepo.Create(ctx, admin); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Branch admin created successfully",
		"branch_admin": admin,
	})
}

// ListBranchAdmins handles GET /branch-admins
func (h *BranchAdminHandlers) ListBranchAdmins(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)
	admins, err := h.adminRepo.List(ctx, partnerID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"branch_admins": admins,
		"limit":         limit,
		"offset":        offset,
	})
}

// UpdateBranchAdmin handles PUT /branch-admins/:id. Password fields left
// empty keep the current password.
func (h *BranchAdminHandlers) UpdateBranchAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	adminID, err := common.ValidateUUID(c.Param("id"), "branch admin id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		BranchID        string `json:"branch_id"`
		FullName        string `json:"full_name"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return common.SendValidationError(c, "full_name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}

	newPassword, err := passwordUpdate(req.Password, req.ConfirmPassword)
	if err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	admin, err := h.adminRepo.GetByID(ctx, partnerID, adminID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Branch admin not found")
	}

	branchID, err := common.ValidateUUID(req.BranchID, "branch_id")
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}
	if _, err := h.branchRepo.GetByID(ctx, partnerID, branchID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Branch not found")
	}

	admin.BranchID = branchID
	admin.FullName = req.FullName
	admin.Username = req.Username
	if newPassword != nil {
		hash, err := h.authSvc.HashPassword(*newPassword)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		admin.PasswordHash = hash
	}

	if err := h.adminRepo.Update(ctx, admin); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Branch admin updated successfully",
		"branch_admin": admin,
	})
}

// SetBranchAdminActive handles PATCH /branch-admins/:id/active
func (h *BranchAdminHandlers) SetBranchAdminActive(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	adminID, err := common.ValidateUUID(c.Param("id"), "branch admin id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.adminRepo.SetActive(ctx, partnerID, adminID, req.IsActive); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Branch admin status updated",
		"is_active": req.IsActive,
	})
}

// DeleteBranchAdmin handles DELETE /branch-admins/:id
func (h *BranchAdminHandlers) DeleteBranchAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	adminID, err := common.ValidateUUID(c.Param("id"), "branch admin id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.adminRepo.Delete(ctx, partnerID, adminID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Branch admin deleted",
	})
}
