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

// BranchHandlers manages the partner's branches. Creation is gated by the
// subscription plan's branch limit.
type BranchHandlers struct {
	branchRepo repositories.BranchRepository
	subSvc     services.SubscriptionService
}

func NewBranchHandlers(branchRepo repositories.BranchRepository, subSvc services.SubscriptionService) *BranchHandlers {
	return &BranchHandlers{branchRepo: branchRepo, subSvc: subSvc}
}

func (h *BranchHandlers) validateBranch(name, phone string, taxRate float64) error {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePhone(phone, "phone"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if taxRate < 0 || taxRate > 100 {
		return echo.NewHTTPError(http.StatusBadRequest, "tax_rate must be between 0 and 100")
	}
	return nil
}

// CreateBranch handles POST /branches
func (h *BranchHandlers) CreateBranch(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		Name         string  `json:"name"`
		Address      string  `json:"address"`
		Phone        string  `json:"phone"`
		TaxRate      float64 `json:"tax_rate"`
		TaxInclusive bool    `json:"tax_inclusive"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateBranch(req.Name, req.Phone, req.TaxRate); err != nil {
		return err
	}

	if err := h.subSvc.CheckBranchQuota(ctx, partnerID); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}

	branch := &models.Branch{
		ID:           uuid.New(),
		PartnerID:    partnerID,
		Name:         req.Name,
		Address:      req.Address,
		Phone:        req.Phone,
		TaxRate:      req.TaxRate,
		TaxInclusive: req.TaxInclusive,
	}
	if err := h.branchRepo.Create(ctx, branch); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Branch created successfully",
		"branch":  branch,
	})
}

// ListBranches handles GET /branches
func (h *BranchHandlers) ListBranches(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)
	branches, err := h.branchRepo.List(ctx, partnerID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"branches": branches,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetBranchByID handles GET /branches/:id
func (h *BranchHandlers) GetBranchByID(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := common.ValidateUUID(c.Param("id"), "branch id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	branch, err := h.branchRepo.GetByID(ctx, partnerID, branchID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Branch not found")
	}
	return c.JSON(http.StatusOK, branch)
}

// UpdateBranch handles PUT /branches/:id
func (h *BranchHandlers) UpdateBranch(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := common.ValidateUUID(c.Param("id"), "branch id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		Name         string  `json:"name"`
		Address      string  `json:"address"`
		Phone        string  `json:"phone"`
		TaxRate      float64 `json:"tax_rate"`
		TaxInclusive bool    `json:"tax_inclusive"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validateBranch(req.Name, req.Phone, req.TaxRate); err != nil {
		return err
	}

	branch, err := h.branchRepo.GetByID(ctx, partnerID, branchID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Branch not found")
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.Phone = req.Phone
	branch.TaxRate = req.TaxRate
	branch.TaxInclusive = req.TaxInclusive

	if err := h.branchRepo.Update(ctx, branch); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Branch updated successfully",
		"branch":  branch,
	})
}

// DeleteBranch handles DELETE /branches/:id
func (h *BranchHandlers) DeleteBranch(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := common.ValidateUUID(c.Param("id"), "branch id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.branchRepo.Delete(ctx, partnerID, branchID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Branch deleted",
	})
}
