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

const paymentProofBucket = "payment-proofs"

// SubscriptionHandlers covers the plan catalog (platform admins), purchase
// orders and the partner's own subscription view.
type SubscriptionHandlers struct {
	subSvc     services.SubscriptionService
	planRepo   repositories.SubscriptionPlanRepository
	orderRepo  repositories.SubscriptionOrderRepository
	storageSvc services.StorageService
}

func NewSubscriptionHandlers(
	subSvc services.SubscriptionService,
	planRepo repositories.SubscriptionPlanRepository,
	orderRepo repositories.SubscriptionOrderRepository,
	storageSvc services.StorageService,
) *SubscriptionHandlers {
	return &SubscriptionHandlers{
		subSvc:     subSvc,
		planRepo:   planRepo,
		orderRepo:  orderRepo,
		storageSvc: storageSvc,
	}
}

// --- plan catalog (platform role) ---

// CreatePlan handles POST /plans
func (h *SubscriptionHandlers) CreatePlan(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		DurationDays int     `json:"duration_days"`
		MaxBranches  int     `json:"max_branches"`
		MaxDevices   int     `json:"max_devices"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Price, "price", 1e9); err != nil {
		return common.SendValidationError(c, "price", err.Error())
	}
	if req.DurationDays <= 0 {
		return common.SendValidationError(c, "duration_days", "duration_days must be positive")
	}
	if req.MaxBranches <= 0 || req.MaxDevices <= 0 {
		return common.SendValidationError(c, "limits", "max_branches and max_devices must be positive")
	}

	plan := &models.SubscriptionPlan{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		MaxBranches:  req.MaxBranches,
		MaxDevices:   req.MaxDevices,
		IsActive:     true,
	}
	if err := h.planRepo.Create(ctx, plan); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Plan created successfully",
		"plan":    plan,
	})
}

// ListPlans handles GET /plans. Partners only see active plans; platform
// admins pass include_inactive=true to see retired ones too.
func (h *SubscriptionHandlers) ListPlans(c echo.Context) error {
	ctx := c.Request().Context()

	activeOnly := true
	if c.QueryParam("include_inactive") == "true" {
		role, _ := common.GetRoleFromContext(ctx)
		if role == models.RolePlatformAdmin {
			activeOnly = false
		}
	}

	limit, offset := listParams(c)
	plans, err := h.planRepo.List(ctx, activeOnly, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"plans":  plans,
		"limit":  limit,
		"offset": offset,
	})
}

// UpdatePlan handles PUT /plans/:id
func (h *SubscriptionHandlers) UpdatePlan(c echo.Context) error {
	ctx := c.Request().Context()

	planID, err := common.ValidateUUID(c.Param("id"), "plan id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.planRepo.GetByID(ctx, planID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Plan not found")
	}

	var req struct {
		Name         string  `json:"name"`
		Description  string  `json:"description"`
		Price        float64 `json:"price"`
		DurationDays int     `json:"duration_days"`
		MaxBranches  int     `json:"max_branches"`
		MaxDevices   int     `json:"max_devices"`
		IsActive     bool    `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Price, "price", 1e9); err != nil {
		return common.SendValidationError(c, "price", err.Error())
	}
	if req.DurationDays <= 0 {
		return common.SendValidationError(c, "duration_days", "duration_days must be positive")
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = req.Price
	plan.DurationDays = req.DurationDays
	plan.MaxBranches = req.MaxBranches
	plan.MaxDevices = req.MaxDevices
	plan.IsActive = req.IsActive

	if err := h.planRepo.Update(ctx, plan); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Plan updated successfully",
		"plan":    plan,
	})
}

// DeletePlan handles DELETE /plans/:id
func (h *SubscriptionHandlers) DeletePlan(c echo.Context) error {
	ctx := c.Request().Context()

	planID, err := common.ValidateUUID(c.Param("id"), "plan id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.planRepo.Delete(ctx, planID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Plan deleted",
	})
}

// --- orders ---

// CreateOrder handles POST /subscription-orders
func (h *SubscriptionHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		PlanID string `json:"plan_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	planID, err := common.ValidateUUID(req.PlanID, "plan_id")
	if err != nil {
		return common.SendValidationError(c, "plan_id", err.Error())
	}

	order, err := h.subSvc.CreateOrder(ctx, partnerID, planID)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order created, awaiting payment proof",
		"order":   order,
	})
}

// UploadPaymentProof handles POST /subscription-orders/:id/proof
// (multipart form with proof_image).
func (h *SubscriptionHandlers) UploadPaymentProof(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	header, err := c.FormFile("proof_image")
	if err != nil {
		return common.SendValidationError(c, "proof_image", "proof_image file is required")
	}
	contentType, err := validateImageFile(header)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer file.Close()

	objectKey := fmt.Sprintf("%s/%s-%s", partnerID, orderID, header.Filename)
	if err := h.storageSvc.UploadImage(ctx, paymentProofBucket, objectKey, contentType, file, header.Size); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	if err := h.orderRepo.AttachProofImage(ctx, partnerID, orderID, objectKey); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Payment proof uploaded",
	})
}

// ListMyOrders handles GET /subscription-orders for the partner.
func (h *SubscriptionHandlers) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	limit, offset := listParams(c)
	orders, err := h.orderRepo.ListByPartner(ctx, partnerID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// ListPendingOrders handles GET /orders for platform admins. An optional
// status query filters; default shows orders awaiting review.
func (h *SubscriptionHandlers) ListPendingOrders(c echo.Context) error {
	ctx := c.Request().Context()

	status := c.QueryParam("status")
	if status == "" {
		status = models.OrderStatusPendingPayment
	}
	switch status {
	case models.OrderStatusPendingPayment, models.OrderStatusApproved, models.OrderStatusRejected:
	default:
		return common.SendValidationError(c, "status", "unknown order status")
	}

	limit, offset := listParams(c)
	orders, err := h.orderRepo.ListByStatus(ctx, status, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"status": status,
		"limit":  limit,
		"offset": offset,
	})
}

// ApproveOrder handles POST /orders/:id/approve
func (h *SubscriptionHandlers) ApproveOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.subSvc.ApproveOrder(ctx, orderID); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order approved, subscription updated",
	})
}

// RejectOrder handles POST /orders/:id/reject
func (h *SubscriptionHandlers) RejectOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.subSvc.RejectOrder(ctx, orderID); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Order rejected",
	})
}

// GetMySubscription handles GET /subscription. Returns the partner's
// active subscription or 404 when none exists.
func (h *SubscriptionHandlers) GetMySubscription(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	sub, err := h.subSvc.GetActiveSubscription(ctx, partnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "No active subscription")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"subscription": sub,
	})
}
