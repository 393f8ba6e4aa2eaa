package handlers

import (
	"net/http"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// DiscountRuleHandlers manages discount rules with the same general/local
// scoping as the rest of the catalog.
type DiscountRuleHandlers struct {
	ruleRepo repositories.DiscountRuleRepository
}

func NewDiscountRuleHandlers(ruleRepo repositories.DiscountRuleRepository) *DiscountRuleHandlers {
	return &DiscountRuleHandlers{ruleRepo: ruleRepo}
}

func validateDiscountRule(name, discountType string, percent, amount float64) error {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	switch discountType {
	case "percent":
		if percent <= 0 || percent > 100 {
			return echo.NewHTTPError(http.StatusBadRequest, "percent must be between 0 and 100")
		}
	case "fixed":
		if amount <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
		}
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "discount_type must be percent or fixed")
	}
	return nil
}

// CreateDiscountRule handles POST /discount-rules
func (h *DiscountRuleHandlers) CreateDiscountRule(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		Name         string  `json:"name"`
		DiscountType string  `json:"discount_type"`
		Percent      float64 `json:"percent"`
		Amount       float64 `json:"amount"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := validateDiscountRule(req.Name, req.DiscountType, req.Percent, req.Amount); err != nil {
		return err
	}

	rule := &models.DiscountRule{
		ID:           uuid.New(),
		PartnerID:    partnerID,
		BranchID:     actorBranch(c),
		Name:         req.Name,
		DiscountType: req.DiscountType,
		Percent:      req.Percent,
		Amount:       req.Amount,
		IsActive:     true,
	}
	if err := h.ruleRepo.Create(ctx, rule); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":       "Discount rule created successfully",
		"discount_rule": rule,
	})
}

// ListDiscountRules handles GET /discount-rules
func (h *DiscountRuleHandlers) ListDiscountRules(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)

	var rules []*models.DiscountRule
	var err error
	if branchID := actorBranch(c); branchID != nil {
		rules, err = h.ruleRepo.ListVisibleToBranch(ctx, partnerID, *branchID, limit, offset)
	} else {
		rules, err = h.ruleRepo.List(ctx, partnerID, limit, offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"discount_rules": rules,
		"limit":          limit,
		"offset":         offset,
	})
}

// UpdateDiscountRule handles PUT /discount-rules/:id
func (h *DiscountRuleHandlers) UpdateDiscountRule(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	ruleID, err := common.ValidateUUID(c.Param("id"), "discount rule id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		Name         string  `json:"name"`
		DiscountType string  `json:"discount_type"`
		Percent      float64 `json:"percent"`
		Amount       float64 `json:"amount"`
		IsActive     bool    `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := validateDiscountRule(req.Name, req.DiscountType, req.Percent, req.Amount); err != nil {
		return err
	}

	rule, err := h.ruleRepo.GetByID(ctx, partnerID, ruleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Discount rule not found")
	}
	if err := scopedWriteCheck(actorBranch(c), rule.BranchID); err != nil {
		return err
	}

	rule.Name = req.Name
	rule.DiscountType = req.DiscountType
	rule.Percent = req.Percent
	rule.Amount = req.Amount
	rule.IsActive = req.IsActive

	if err := h.ruleRepo.Update(ctx, rule); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "Discount rule updated successfully",
		"discount_rule": rule,
	})
}

// DeleteDiscountRule handles DELETE /discount-rules/:id
func (h *DiscountRuleHandlers) DeleteDiscountRule(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	ruleID, err := common.ValidateUUID(c.Param("id"), "discount rule id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rule, err := h.ruleRepo.GetByID(ctx, partnerID, ruleID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Discount rule not found")
	}
	if err := scopedWriteCheck(actorBranch(c), rule.BranchID); err != nil {
		return err
	}

	if err := h.ruleRepo.Delete(ctx, partnerID, ruleID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Discount rule deleted",
	})
}
