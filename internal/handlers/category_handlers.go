package handlers

import (
	"net/http"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CategoryHandlers manages product categories, scoped like products:
// owner records are general, branch records are local.
type CategoryHandlers struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryHandlers(categoryRepo repositories.CategoryRepository) *CategoryHandlers {
	return &CategoryHandlers{categoryRepo: categoryRepo}
}

// scopedWriteCheck maps cross-scope catalog writes to 403.
func scopedWriteCheck(actorBranchID, recordBranchID *uuid.UUID) error {
	if err := models.CheckScopeWrite(actorBranchID, recordBranchID); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return nil
}

// CreateCategory handles POST /categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	category := &models.Category{
		ID:        uuid.New(),
		PartnerID: partnerID,
		BranchID:  actorBranch(c),
		Name:      req.Name,
	}
	if err := h.categoryRepo.Create(ctx, category); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": category,
	})
}

// ListCategories handles GET /categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)

	var categories []*models.Category
	var err error
	if branchID := actorBranch(c); branchID != nil {
		categories, err = h.categoryRepo.ListVisibleToBranch(ctx, partnerID, *branchID, limit, offset)
	} else {
		categories, err = h.categoryRepo.List(ctx, partnerID, limit, offset)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"limit":      limit,
		"offset":     offset,
	})
}

// UpdateCategory handles PUT /categories/:id
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	categoryID, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	category, err := h.categoryRepo.GetByID(ctx, partnerID, categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err := scopedWriteCheck(actorBranch(c), category.BranchID); err != nil {
		return err
	}

	category.Name = req.Name
	if err := h.categoryRepo.Update(ctx, category); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory handles DELETE /categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	categoryID, err := common.ValidateUUID(c.Param("id"), "category id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryRepo.GetByID(ctx, partnerID, categoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Category not found")
	}
	if err := scopedWriteCheck(actorBranch(c), category.BranchID); err != nil {
		return err
	}

	if err := h.categoryRepo.Delete(ctx, partnerID, categoryID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Category deleted",
	})
}
