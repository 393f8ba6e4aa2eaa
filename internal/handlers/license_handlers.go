package handlers

import (
	"net/http"

	"kasirhub/internal/common"
	"kasirhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// LicenseHandlers manages device licenses: issuing activation codes,
// assigning them to branches and binding POS devices.
type LicenseHandlers struct {
	licenseSvc services.LicenseService
}

func NewLicenseHandlers(licenseSvc services.LicenseService) *LicenseHandlers {
	return &LicenseHandlers{licenseSvc: licenseSvc}
}

// CreateLicense handles POST /licenses
func (h *LicenseHandlers) CreateLicense(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	license, err := h.licenseSvc.Create(ctx, partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "License created successfully",
		"license": license,
	})
}

// ListLicenses handles GET /licenses. Every record carries its derived
// status (active, assigned or pending).
func (h *LicenseHandlers) ListLicenses(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)
	licenses, err := h.licenseSvc.List(ctx, partnerID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"licenses": licenses,
		"limit":    limit,
		"offset":   offset,
	})
}

// AssignLicense handles PATCH /licenses/:id/assign with
// {"branch_id": "<uuid>"} or null to unassign.
func (h *LicenseHandlers) AssignLicense(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	licenseID, err := common.ValidateUUID(c.Param("id"), "license id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		BranchID *string `json:"branch_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	var branchID *uuid.UUID
	if req.BranchID != nil && *req.BranchID != "" {
		parsed, err := common.ValidateUUID(*req.BranchID, "branch_id")
		if err != nil {
			return common.SendValidationError(c, "branch_id", err.Error())
		}
		branchID = &parsed
	}

	if err := h.licenseSvc.AssignBranch(ctx, partnerID, licenseID, branchID); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "License assignment updated",
	})
}

// ActivateLicense handles POST /licenses/activate. Called by POS devices
// with an activation code; not tied to a dashboard session.
func (h *LicenseHandlers) ActivateLicense(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ActivationCode string `json:"activation_code"`
		DeviceID       string `json:"device_id"`
		DeviceName     string `json:"device_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.ActivationCode, "activation_code"); err != nil {
		return common.SendValidationError(c, "activation_code", err.Error())
	}
	if err := common.ValidateRequiredString(req.DeviceID, "device_id"); err != nil {
		return common.SendValidationError(c, "device_id", err.Error())
	}

	license, err := h.licenseSvc.Activate(ctx, req.ActivationCode, req.DeviceID, req.DeviceName)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "License activated",
		"license": license,
	})
}

// ResetLicenseDevice handles POST /licenses/:id/reset-device. Clears the
// device binding so the code can be reused on a replacement device.
func (h *LicenseHandlers) ResetLicenseDevice(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	licenseID, err := common.ValidateUUID(c.Param("id"), "license id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.licenseSvc.ResetDevice(ctx, partnerID, licenseID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Device binding reset",
	})
}

// DeleteLicense handles DELETE /licenses/:id
func (h *LicenseHandlers) DeleteLicense(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	licenseID, err := common.ValidateUUID(c.Param("id"), "license id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.licenseSvc.Delete(ctx, partnerID, licenseID); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "License deleted",
	})
}
