package handlers

import (
	"net/http"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"
	"kasirhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CashierHandlers manages the two kinds of till staff: full cashier
// accounts (username/password) and PIN operators.
type CashierHandlers struct {
	accountRepo  repositories.CashierAccountRepository
	operatorRepo repositories.PinOperatorRepository
	authSvc      services.AuthService
}

func NewCashierHandlers(accountRepo repositories.CashierAccountRepository, operatorRepo repositories.PinOperatorRepository, authSvc services.AuthService) *CashierHandlers {
	return &CashierHandlers{
		accountRepo:  accountRepo,
		operatorRepo: operatorRepo,
		authSvc:      authSvc,
	}
}

// branchScope resolves the branch the caller may manage: branch admins
// are pinned to their own branch, owners pass ?branch_id= or a body field.
func branchScope(c echo.Context, requested string) (uuid.UUID, error) {
	ctx := c.Request().Context()
	if branchID, ok := common.GetBranchIDFromContext(ctx); ok {
		return branchID, nil
	}
	return common.ValidateUUID(requested, "branch_id")
}

// CreateCashierAccount handles POST /cashier-accounts
func (h *CashierHandlers) CreateCashierAccount(c echo.Context) error {
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

	branchID, err := branchScope(c, req.BranchID)
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	passwordHash, err := h.authSvc.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	account := &models.CashierAccount{
		ID:           uuid.New(),
		PartnerID:    partnerID,
		BranchID:     branchID,
		FullName:     req.FullName,
		Username:     req.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
	}
	if err := h.accountRepo.Create(ctx, account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":         "Cashier account created successfully",
		"cashier_account": account,
	})
}

// ListCashierAccounts handles GET /cashier-accounts
func (h *CashierHandlers) ListCashierAccounts(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := branchScope(c, c.QueryParam("branch_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, offset := listParams(c)
	accounts, err := h.accountRepo.ListByBranch(ctx, partnerID, branchID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"cashier_accounts": accounts,
		"limit":            limit,
		"offset":           offset,
	})
}

// UpdateCashierAccount handles PUT /cashier-accounts/:id
func (h *CashierHandlers) UpdateCashierAccount(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	accountID, err := common.ValidateUUID(c.Param("id"), "cashier account id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		FullName        string `json:"full_name"`
		Username        string `json:"username"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirm_password"`
		IsActive        bool   `json:"is_active"`
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

	account, err := h.accountRepo.GetByID(ctx, partnerID, accountID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Cashier account not found")
	}

	account.FullName = req.FullName
	account.Username = req.Username
	account.IsActive = req.IsActive
	if newPassword != nil {
		hash, err := h.authSvc.HashPassword(*newPassword)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
		}
		account.PasswordHash = hash
	}

	if err := h.accountRepo.Update(ctx, account); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":         "Cashier account updated successfully",
		"cashier_account": account,
	})
}

// DeleteCashierAccount handles DELETE /cashier-accounts/:id
func (h *CashierHandlers) DeleteCashierAccount(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	accountID, err := common.ValidateUUID(c.Param("id"), "cashier account id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.accountRepo.Delete(ctx, partnerID, accountID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Cashier account deleted",
	})
}

// CreatePinOperator handles POST /pin-operators
func (h *CashierHandlers) CreatePinOperator(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		BranchID string `json:"branch_id"`
		FullName string `json:"full_name"`
		Pin      string `json:"pin"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return common.SendValidationError(c, "full_name", err.Error())
	}
	if err := common.ValidatePin(req.Pin); err != nil {
		return common.SendValidationError(c, "pin", err.Error())
	}

	branchID, err := branchScope(c, req.BranchID)
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	pinHash, err := h.authSvc.HashPassword(req.Pin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash pin")
	}

	operator := &models.PinOperator{
		ID:        uuid.New(),
		PartnerID: partnerID,
		BranchID:  branchID,
		FullName:  req.FullName,
		PinHash:   pinHash,
		IsActive:  true,
	}
	if err := h.operatorRepo.Create(ctx, operator); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Operator created successfully",
		"pin_operator": operator,
	})
}

// ListPinOperators handles GET /pin-operators
func (h *CashierHandlers) ListPinOperators(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := branchScope(c, c.QueryParam("branch_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, offset := listParams(c)
	operators, err := h.operatorRepo.ListByBranch(ctx, partnerID, branchID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"pin_operators": operators,
		"limit":         limit,
		"offset":        offset,
	})
}

// UpdatePinOperator handles PUT /pin-operators/:id. An empty pin keeps
// the stored one.
func (h *CashierHandlers) UpdatePinOperator(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	operatorID, err := common.ValidateUUID(c.Param("id"), "operator id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		FullName string `json:"full_name"`
		Pin      string `json:"pin"`
		IsActive bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.FullName, "full_name"); err != nil {
		return common.SendValidationError(c, "full_name", err.Error())
	}

	operator, err := h.operatorRepo.GetByID(ctx, partnerID, operatorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Operator not found")
	}

	operator.FullName = req.FullName
	operator.IsActive = req.IsActive
	if req.Pin != "" {
		if err := common.ValidatePin(req.Pin); err != nil {
			return common.SendValidationError(c, "pin", err.Error())
		}
		hash, err := h.authSvc.HashPassword(req.Pin)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash pin")
		}
		operator.PinHash = hash
	}

	if err := h.operatorRepo.Update(ctx, operator); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":      "Operator updated successfully",
		"pin_operator": operator,
	})
}

// DeletePinOperator handles DELETE /pin-operators/:id
func (h *CashierHandlers) DeletePinOperator(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	operatorID, err := common.ValidateUUID(c.Param("id"), "operator id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.operatorRepo.Delete(ctx, partnerID, operatorID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Operator deleted",
	})
}
