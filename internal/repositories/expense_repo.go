package repositories

import (
	"context"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time, limit, offset int) ([]*models.Expense, error)
	SumByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time) (float64, error)
}

type expenseRepo struct {
	db Database
}

func NewExpenseRepository(db Database) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, partner_id, branch_id, description, amount, expense_date, proof_image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, expense.ID, expense.PartnerID, expense.BranchID,
		expense.Description, expense.Amount, expense.ExpenseDate, expense.ProofImageKey)
	return err
}

func (r *expenseRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Expense, error) {
	expense := &models.Expense{}
	query := `
		SELECT id, partner_id, branch_id, description, amount, expense_date, proof_image_key, created_at, updated_at
		FROM expenses
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&expense.ID, &expense.PartnerID, &expense.BranchID,
		&expense.Description, &expense.Amount, &expense.ExpenseDate, &expense.ProofImageKey,
		&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *expenseRepo) Update(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE expenses
		SET description = $1, amount = $2, expense_date = $3, proof_image_key = $4, updated_at = NOW()
		WHERE partner_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, expense.Description, expense.Amount, expense.ExpenseDate,
		expense.ProofImageKey, expense.PartnerID, expense.ID)
	return err
}

func (r *expenseRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *expenseRepo) ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time, limit, offset int) ([]*models.Expense, error) {
	query := `
		SELECT id, partner_id, branch_id, description, amount, expense_date, proof_image_key, created_at, updated_at
		FROM expenses
		WHERE partner_id = $1 AND branch_id = $2 AND expense_date >= $3 AND expense_date <= $4
		ORDER BY expense_date DESC
		LIMIT $5 OFFSET $6
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.PartnerID, &expense.BranchID, &expense.Description,
			&expense.Amount, &expense.ExpenseDate, &expense.ProofImageKey, &expense.CreatedAt, &expense.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

func (r *expenseRepo) SumByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE partner_id = $1 AND branch_id = $2 AND expense_date >= $3 AND expense_date <= $4
	`
	err := r.db.QueryRow(ctx, query, partnerID, branchID, from, to).Scan(&total)
	return total, err
}
