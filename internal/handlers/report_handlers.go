package handlers

import (
	"net/http"
	"time"

	"kasirhub/internal/common"
	"kasirhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ReportHandlers serves aggregated sales reports.
type ReportHandlers struct {
	reportSvc services.ReportService
}

func NewReportHandlers(reportSvc services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportSvc: reportSvc}
}

// GetSalesReport handles GET /reports/sales?start_date=&end_date=&branch_id=
// Defaults to the last 30 days. Branch admins are pinned to their own
// branch; owners may pass branch_id or omit it for all branches.
func (h *ReportHandlers) GetSalesReport(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if param := c.QueryParam("start_date"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			return common.SendValidationError(c, "start_date", "start_date must be YYYY-MM-DD")
		}
		from = parsed
	}
	if param := c.QueryParam("end_date"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			return common.SendValidationError(c, "end_date", "end_date must be YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1) // inclusive end
	}

	var branchID *uuid.UUID
	if pinned, ok := common.GetBranchIDFromContext(ctx); ok {
		branchID = &pinned
	} else if param := c.QueryParam("branch_id"); param != "" {
		parsed, err := common.ValidateUUID(param, "branch_id")
		if err != nil {
			return common.SendValidationError(c, "branch_id", err.Error())
		}
		branchID = &parsed
	}

	report, err := h.reportSvc.SalesReport(ctx, partnerID, branchID, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"report": report,
	})
}
