package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"kasirhub/internal/common"
	"kasirhub/internal/models"
	"kasirhub/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const expenseProofBucket = "expense-proofs"

// ExpenseHandlers records branch expenses. Create and update accept
// multipart forms so a receipt photo can ride along.
type ExpenseHandlers struct {
	expenseSvc services.ExpenseService
	storageSvc services.StorageService
}

func NewExpenseHandlers(expenseSvc services.ExpenseService, storageSvc services.StorageService) *ExpenseHandlers {
	return &ExpenseHandlers{expenseSvc: expenseSvc, storageSvc: storageSvc}
}

// expenseRange parses the from/to query params, defaulting to the
// current month.
func expenseRange(c echo.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)

	if param := c.QueryParam("from"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			return from, to, fmt.Errorf("from must be YYYY-MM-DD")
		}
		from = parsed
	}
	if param := c.QueryParam("to"); param != "" {
		parsed, err := time.Parse("2006-01-02", param)
		if err != nil {
			return from, to, fmt.Errorf("to must be YYYY-MM-DD")
		}
		to = parsed.AddDate(0, 0, 1) // inclusive end
	}
	if to.Before(from) {
		return from, to, fmt.Errorf("to must not precede from")
	}
	return from, to, nil
}

// uploadExpenseProof stores the optional proof_image form file and
// returns its object key.
func (h *ExpenseHandlers) uploadExpenseProof(c echo.Context, partnerID uuid.UUID) (*string, error) {
	header, err := c.FormFile("proof_image")
	if err != nil {
		return nil, nil // no image attached
	}

	contentType, err := validateImageFile(header)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := header.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer file.Close()

	objectKey := fmt.Sprintf("%s/%s-%s", partnerID, uuid.NewString(), header.Filename)
	ctx := c.Request().Context()
	if err := h.storageSvc.UploadImage(ctx, expenseProofBucket, objectKey, contentType, file, header.Size); err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}
	return &objectKey, nil
}

// CreateExpense handles POST /expenses (multipart form)
func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	description := c.FormValue("description")
	if err := common.ValidateRequiredString(description, "description"); err != nil {
		return common.SendValidationError(c, "description", err.Error())
	}

	amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
	if err != nil {
		return common.SendValidationError(c, "amount", "amount must be a number")
	}
	if err := common.ValidatePositiveFloat(amount, "amount", 1e9); err != nil {
		return common.SendValidationError(c, "amount", err.Error())
	}

	branchID, err := branchScope(c, c.FormValue("branch_id"))
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	expense := &models.Expense{
		PartnerID:   partnerID,
		BranchID:    branchID,
		Description: description,
		Amount:      amount,
	}

	if dateParam := c.FormValue("expense_date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return common.SendValidationError(c, "expense_date", "expense_date must be YYYY-MM-DD")
		}
		expense.ExpenseDate = parsed
	}

	imageKey, err := h.uploadExpenseProof(c, partnerID)
	if err != nil {
		return err
	}
	expense.ProofImageKey = imageKey

	if err := h.expenseSvc.Create(ctx, expense); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Expense recorded successfully",
		"expense": expense,
	})
}

// ListExpenses handles GET /expenses?from=&to=
func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	branchID, err := branchScope(c, c.QueryParam("branch_id"))
	if err != nil {
		return common.SendValidationError(c, "branch_id", err.Error())
	}

	from, to, err := expenseRange(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	limit, offset := listParams(c)
	expenses, err := h.expenseSvc.ListByBranch(ctx, partnerID, branchID, from, to, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.expenseSvc.TotalByBranch(ctx, partnerID, branchID, from, to)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// UpdateExpense handles PUT /expenses/:id (multipart form)
func (h *ExpenseHandlers) UpdateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	expenseID, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseSvc.GetByID(ctx, partnerID, expenseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Expense not found")
	}
	if branchID, ok := common.GetBranchIDFromContext(ctx); ok && branchID != expense.BranchID {
		return echo.NewHTTPError(http.StatusForbidden, "Expense belongs to another branch")
	}

	description := c.FormValue("description")
	if err := common.ValidateRequiredString(description, "description"); err != nil {
		return common.SendValidationError(c, "description", err.Error())
	}

	amount, err := strconv.ParseFloat(c.FormValue("amount"), 64)
	if err != nil {
		return common.SendValidationError(c, "amount", "amount must be a number")
	}

	expense.Description = description
	expense.Amount = amount

	if dateParam := c.FormValue("expense_date"); dateParam != "" {
		parsed, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			return common.SendValidationError(c, "expense_date", "expense_date must be YYYY-MM-DD")
		}
		expense.ExpenseDate = parsed
	}

	imageKey, err := h.uploadExpenseProof(c, partnerID)
	if err != nil {
		return err
	}
	if imageKey != nil {
		if expense.ProofImageKey != nil {
			h.storageSvc.DeleteImage(ctx, expenseProofBucket, *expense.ProofImageKey)
		}
		expense.ProofImageKey = imageKey
	}

	if err := h.expenseSvc.Update(ctx, expense); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Expense updated successfully",
		"expense": expense,
	})
}

// DeleteExpense handles DELETE /expenses/:id
func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	ctx := c.Request().Context()

	partnerID, ok := common.GetPartnerIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Partner not found")
	}

	expenseID, err := common.ValidateUUID(c.Param("id"), "expense id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseSvc.GetByID(ctx, partnerID, expenseID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Expense not found")
	}
	if branchID, ok := common.GetBranchIDFromContext(ctx); ok && branchID != expense.BranchID {
		return echo.NewHTTPError(http.StatusForbidden, "Expense belongs to another branch")
	}

	if err := h.expenseSvc.Delete(ctx, partnerID, expenseID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Expense deleted",
	})
}
