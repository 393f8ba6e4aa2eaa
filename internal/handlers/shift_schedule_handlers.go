package handlers

import (
	"net/http"
	"regexp"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var shiftTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ShiftScheduleHandlers manages the cashier shift templates of a branch.
type ShiftScheduleHandlers struct {
	shiftRepo repositories.ShiftScheduleRepository
}

func NewShiftScheduleHandlers(shiftRepo repositories.ShiftScheduleRepository) *ShiftScheduleHandlers {
	return &ShiftScheduleHandlers{shiftRepo: shiftRepo}
}

func validateShiftTimes(start, end string) error {
	if !shiftTimePattern.MatchString(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time must be HH:MM")
	}
	if !shiftTimePattern.MatchString(end) {
		return echo.NewHTTPError(http.StatusBadRequest, "end_time must be HH:MM")
	}
	return nil
}

// CreateShiftSchedule handles POST /shift-schedules
func (h *ShiftScheduleHandlers) CreateShiftSchedule(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	var req struct {
		BranchID  string `json:"branch_id"`
		Name      string `json:"name"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := validateShiftTimes(req.StartTime, req.EndTime); err != nil {
		return err
	}

	branchID, err := branchScope(c, req.BranchID)
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	shift := &models.ShiftSchedule{
		ID:        uuid.New(),
		PartnerID: partnerID,
		BranchID:  branchID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  true,
	}
	if err := h.shiftRepo.Create(ctx, shift); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":        "Shift schedule created successfully",
		"shift_schedule": shift,
	})
}

// ListShiftSchedules handles GET /shift-schedules
func (h *ShiftScheduleHandlers) ListShiftSchedules(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := branchScope(c, c.QueryParam("branch_id"))
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	limit, offset := listParams(c)
	shifts, err := h.shiftRepo.ListByBranch(ctx, partnerID, branchID, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"shift_schedules": shifts,
		"limit":           limit,
		"offset":          offset,
	})
}

// UpdateShiftSchedule handles PUT /shift-schedules/:id
func (h *ShiftScheduleHandlers) UpdateShiftSchedule(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	shiftID, err := common.ValidateUUID(c.Param("id"), "shift schedule id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var req struct {
		Name      string `json:"name"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		IsActive  bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := validateShiftTimes(req.StartTime, req.EndTime); err != nil {
		return err
	}

	shift, err := h.shiftRepo.GetByID(ctx, partnerID, shiftID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Shift schedule not found")
	}
	if branchID, ok := common.GetBranchIDFromContext(ctx); ok && branchID != shift.BranchID {
		return echo.NewHTTPError(http.StatusForbidden, "Shift schedule belongs to another branch")
	}

	shift.Name = req.Name
	shift.StartTime = req.StartTime
	shift.EndTime = req.EndTime
	shift.IsActive = req.IsActive

	if err := h.shiftRepo.Update(ctx, shift); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "Shift schedule updated successfully",
		"shift_schedule": shift,
	})
}

// DeleteShiftSchedule handles DELETE /shift-schedules/:id
func (h *ShiftScheduleHandlers) DeleteShiftSchedule(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	shiftID, err := common.ValidateUUID(c.Param("id"), "shift schedule id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shift, err := h.shiftRepo.GetByID(ctx, partnerID, shiftID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Shift schedule not found")
	}
	if branchID, ok := common.GetBranchIDFromContext(ctx); ok && branchID != shift.BranchID {
		return echo.NewHTTPError(http.StatusForbidden, "Shift schedule belongs to another branch")
	}

	if err := h.shiftRepo.Delete(ctx, partnerID, shiftID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Shift schedule deleted",
	})
}
