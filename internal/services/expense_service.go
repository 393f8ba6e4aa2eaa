package services

import (
	"context"
	"fmt"
	"time"

	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
)

// ExpenseService records branch expenses with optional proof images.
type ExpenseService interface {
	Create(ctx context.Context, expense *models.Expense) error
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Expense, error)
	ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time, limit, offset int) ([]*models.Expense, error)
	TotalByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time) (float64, error)
}

type expenseService struct {
	expenseRepo repositories.ExpenseRepository
}

func NewExpenseService(expenseRepo repositories.ExpenseRepository) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo}
}

func (s *expenseService) Create(ctx context.Context, expense *models.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.ExpenseDate.IsZero() {
		expense.ExpenseDate = time.Now()
	}
	return s.expenseRepo.Create(ctx, expense)
}

func (s *expenseService) Update(ctx context.Context, expense *models.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	return s.expenseRepo.Update(ctx, expense)
}

func (s *expenseService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	return s.expenseRepo.Delete(ctx, partnerID, id)
}

func (s *expenseService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Expense, error) {
	return s.expenseRepo.GetByID(ctx, partnerID, id)
}

func (s *expenseService) ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time, limit, offset int) ([]*models.Expense, error) {
	return s.expenseRepo.ListByBranch(ctx, partnerID, branchID, from, to, limit, offset)
}

func (s *expenseService) TotalByBranch(ctx context.Context, partnerID, branchID uuid.UUID, from, to time.Time) (float64, error) {
	return s.expenseRepo.SumByBranch(ctx, partnerID, branchID, from, to)
}
