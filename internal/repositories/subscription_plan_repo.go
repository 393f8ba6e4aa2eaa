package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type SubscriptionPlanRepository interface {
	Create(ctx context.Context, plan *models.SubscriptionPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error)
	Update(ctx context.Context, plan *models.SubscriptionPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.SubscriptionPlan, error)
}

type subscriptionPlanRepo struct {
	db Database
}

func NewSubscriptionPlanRepository(db Database) SubscriptionPlanRepository {
	return &subscriptionPlanRepo{db: db}
}

func (r *subscriptionPlanRepo) Create(ctx context.Context, plan *models.SubscriptionPlan) error {
	query := `
		INSERT INTO subscription_plans (id, name, description, price, duration_days, max_branches, max_devices, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, plan.ID, plan.Name, plan.Description, plan.Price,
		plan.DurationDays, plan.MaxBranches, plan.MaxDevices, plan.IsActive)
	return err
}

func (r *subscriptionPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error) {
	plan := &models.SubscriptionPlan{}
	query := `
		SELECT id, name, description, price, duration_days, max_branches, max_devices, is_active, created_at, updated_at
		FROM subscription_plans
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price,
		&plan.DurationDays, &plan.MaxBranches, &plan.MaxDevices, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (r *subscriptionPlanRepo) Update(ctx context.Context, plan *models.SubscriptionPlan) error {
	query := `
		UPDATE subscription_plans
		SET name = $1, description = $2, price = $3, duration_days = $4, max_branches = $5, max_devices = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, plan.Name, plan.Description, plan.Price, plan.DurationDays,
		plan.MaxBranches, plan.MaxDevices, plan.IsActive, plan.ID)
	return err
}

func (r *subscriptionPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM subscription_plans WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *subscriptionPlanRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.SubscriptionPlan, error) {
	query := `
		SELECT id, name, description, price, duration_days, max_branches, max_devices, is_active, created_at, updated_at
		FROM subscription_plans
		WHERE ($1 = false OR is_active = true)
		ORDER BY price ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*models.SubscriptionPlan
	for rows.Next() {
		plan := &models.SubscriptionPlan{}
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.Price, &plan.DurationDays,
			&plan.MaxBranches, &plan.MaxDevices, &plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
