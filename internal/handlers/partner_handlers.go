package handlers

import (
	"net/http"
	"strconv"
	"time"

	"kasirhub/internal/caching"
	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PartnerHandlers manages partner records for the platform dashboard.
type PartnerHandlers struct {
	partnerRepo repositories.PartnerRepository
	cacheSvc    caching.CacheService
}

func NewPartnerHandlers(partnerRepo repositories.PartnerRepository, cacheSvc caching.CacheService) *PartnerHandlers {
	return &PartnerHandlers{partnerRepo: partnerRepo, cacheSvc: cacheSvc}
}

func (h *PartnerHandlers) validatePartner(businessName, ownerName, email, phone string) error {
	if err := common.ValidateRequiredString(businessName, "business_name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(ownerName, "owner_name"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := common.ValidatePhone(phone, "phone"); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// CreatePartner handles POST /partners
func (h *PartnerHandlers) CreatePartner(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		BusinessName string `json:"business_name"`
		OwnerName    string `json:"owner_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validatePartner(req.BusinessName, req.OwnerName, req.Email, req.Phone); err != nil {
		return err
	}

	if _, err := h.partnerRepo.GetByEmail(ctx, req.Email); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "Email is already registered")
	}

	partner := &models.Partner{
		ID:           uuid.New(),
		BusinessName: req.BusinessName,
		OwnerName:    req.OwnerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Status:       models.PartnerStatusActive,
		JoinedAt:     time.Now(),
	}
	if err := h.partnerRepo.Create(ctx, partner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Partner created successfully",
		"partner": partner,
	})
}

// ListPartners handles GET /partners
func (h *PartnerHandlers) ListPartners(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset := listParams(c)
	partners, err := h.partnerRepo.List(ctx, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"partners": partners,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetPartnerByID handles GET /partners/:id
func (h *PartnerHandlers) GetPartnerByID(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, err := common.ValidateUUID(c.Param("id"), "partner id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	partner, err := h.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Partner not found")
	}
	return c.JSON(http.StatusOK, partner)
}

// UpdatePartner handles PUT /partners/:id
func (h *PartnerHandlers) UpdatePartner(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, err := common.ValidateUUID(c.Param("id"), "partner id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		BusinessName string `json:"business_name"`
		OwnerName    string `json:"owner_name"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.validatePartner(req.BusinessName, req.OwnerName, req.Email, req.Phone); err != nil {
		return err
	}

	partner, err := h.partnerRepo.GetByID(ctx, partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Partner not found")
	}

	partner.BusinessName = req.BusinessName
	partner.OwnerName = req.OwnerName
	partner.Email = req.Email
	partner.Phone = req.Phone

	if err := h.partnerRepo.Update(ctx, partner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Partner updated successfully",
		"partner": partner,
	})
}

// SetPartnerStatus handles PATCH /partners/:id/status with
// {"status": "active"|"suspended"}. Suspension blocks every dashboard
// login under the partner.
func (h *PartnerHandlers) SetPartnerStatus(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, err := common.ValidateUUID(c.Param("id"), "partner id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Status != models.PartnerStatusActive && req.Status != models.PartnerStatusSuspended {
		return echo.NewHTTPError(http.StatusBadRequest, "Status must be active or suspended")
	}

	if err := h.partnerRepo.UpdateStatus(ctx, partnerID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Cached licenses and reports must not outlive a suspension
	if err := h.cacheSvc.InvalidatePartnerCache(ctx, partnerID); err != nil {
		c.Logger().Warnf("failed to invalidate cache for partner %s: %v", partnerID, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Partner status updated",
		"status":  req.Status,
	})
}

// DeletePartner handles DELETE /partners/:id
func (h *PartnerHandlers) DeletePartner(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, err := common.ValidateUUID(c.Param("id"), "partner id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.partnerRepo.Delete(ctx, partnerID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.cacheSvc.InvalidatePartnerCache(ctx, partnerID); err != nil {
		c.Logger().Warnf("failed to invalidate cache for partner %s: %v", partnerID, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Partner deleted",
	})
}

// listParams reads limit/offset query params with the standard defaults.
func listParams(c echo.Context) (int, int) {
	limit := common.DefaultPageSize
	offset := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil {
			offset = o
		}
	}
	return common.NormalizeLimitOffset(limit, offset)
}
