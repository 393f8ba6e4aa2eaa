package handlers

import (
	"net/http"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// VoidRequestHandlers reviews cashier void requests. Requests start
// pending and may be approved or rejected once.
type VoidRequestHandlers struct {
	voidRepo repositories.VoidRequestRepository
}

func NewVoidRequestHandlers(voidRepo repositories.VoidRequestRepository) *VoidRequestHandlers {
	return &VoidRequestHandlers{voidRepo: voidRepo}
}

// CreateVoidRequest handles POST /void-requests
func (h *VoidRequestHandlers) CreateVoidRequest(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		BranchID      string `json:"branch_id"`
		TransactionID string `json:"transaction_id"`
		CashierName   string `json:"cashier_name"`
		Reason        string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Reason, "reason"); err != nil {
		return common.SendValidationError(c, "reason", err.Error())
	}
	if err := common.ValidateRequiredString(req.CashierName, "cashier_name"); err != nil {
		return common.SendValidationError(c, "cashier_name", err.Error())
	}
	transactionID, err := common.ValidateUUID(req.TransactionID, "transaction_id")
	if err != nil {
		return common.SendValidationError(c, "transaction_id", err.Error())
	}

	branchID, err := branchScope(c, req.BranchID)
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	request := &models.VoidRequest{
		ID:            uuid.New(),
		PartnerID:     partnerID,
		BranchID:      branchID,
		TransactionID: transactionID,
		CashierName:   req.CashierName,
		Reason:        req.Reason,
		Status:        models.VoidStatusPending,
	}
	if err := h.voidRepo.Create(ctx, request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":      "Void request submitted",
		"void_request": request,
	})
}

// ListVoidRequests handles GET /void-requests with an optional status
// filter (pending, approved, rejected).
func (h *VoidRequestHandlers) ListVoidRequests(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	status := c.QueryParam("status")
	switch status {
	case "", models.VoidStatusPending, models.VoidStatusApproved, models.VoidStatusRejected:
	default:
		return common.SendValidationError(c, "status", "unknown void request status")
	}

	branchID, err := branchScope(c, c.QueryParam("branch_id"))
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	limit, offset := listParams(c)
	requests, err := h.voidRepo.ListByBranch(ctx, partnerID, branchID, status, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"void_requests": requests,
		"limit":         limit,
		"offset":        offset,
	})
}

// resolveVoidRequest transitions a pending request to the given terminal
// status.
func (h *VoidRequestHandlers) resolveVoidRequest(c echo.Context, status string) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	requestID, err := common.ValidateUUID(c.Param("id"), "void request id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.voidRepo.GetByID(ctx, partnerID, requestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Void request not found")
	}
	if branchID, ok := common.GetBranchIDFromContext(ctx); ok && branchID != request.BranchID {
		return echo.NewHTTPError(http.StatusForbidden, "Void request belongs to another branch")
	}
	if request.Status != models.VoidStatusPending {
		return echo.NewHTTPError(http.StatusConflict, "Void request is already "+request.Status)
	}

	if err := h.voidRepo.UpdateStatus(ctx, partnerID, requestID, status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Void request " + status,
	})
}

// ApproveVoidRequest handles POST /void-requests/:id/approve
func (h *VoidRequestHandlers) ApproveVoidRequest(c echo.Context) error {
	return h.resolveVoidRequest(c, models.VoidStatusApproved)
}

// RejectVoidRequest handles POST /void-requests/:id/reject
func (h *VoidRequestHandlers) RejectVoidRequest(c echo.Context) error {
	return h.resolveVoidRequest(c, models.VoidStatusRejected)
}
