package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type DiscountRuleRepository interface {
	Create(ctx context.Context, rule *models.DiscountRule) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.DiscountRule, error)
	Update(ctx context.Context, rule *models.DiscountRule) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.DiscountRule, error)
	ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.DiscountRule, error)
}

type discountRuleRepo struct {
	db Database
}

func NewDiscountRuleRepository(db Database) DiscountRuleRepository {
	return &discountRuleRepo{db: db}
}

func (r *discountRuleRepo) Create(ctx context.Context, rule *models.DiscountRule) error {
	query := `
		INSERT INTO discount_rules (id, partner_id, branch_id, name, discount_type, percent, amount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, rule.ID, rule.PartnerID, rule.BranchID, rule.Name,
		rule.DiscountType, rule.Percent, rule.Amount, rule.IsActive)
	return err
}

func (r *discountRuleRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.DiscountRule, error) {
	rule := &models.DiscountRule{}
	query := `
		SELECT id, partner_id, branch_id, name, discount_type, percent, amount, is_active, created_at, updated_at
		FROM discount_rules
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&rule.ID, &rule.PartnerID, &rule.BranchID,
		&rule.Name, &rule.DiscountType, &rule.Percent, &rule.Amount, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *discountRuleRepo) Update(ctx context.Context, rule *models.DiscountRule) error {
	query := `
		UPDATE discount_rules
		SET name = $1, discount_type = $2, percent = $3, amount = $4, is_active = $5, updated_at = NOW()
		WHERE partner_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, rule.Name, rule.DiscountType, rule.Percent, rule.Amount,
		rule.IsActive, rule.PartnerID, rule.ID)
	return err
}

func (r *discountRuleRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM discount_rules WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *discountRuleRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.DiscountRule, error) {
	query := `
		SELECT id, partner_id, branch_id, name, discount_type, percent, amount, is_active, created_at, updated_at
		FROM discount_rules
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*models.DiscountRule
	for rows.Next() {
		rule := &models.DiscountRule{}
		if err := rows.Scan(&rule.ID, &rule.PartnerID, &rule.BranchID, &rule.Name, &rule.DiscountType,
			&rule.Percent, &rule.Amount, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *discountRuleRepo) ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.DiscountRule, error) {
	query := `
		SELECT id, partner_id, branch_id, name, discount_type, percent, amount, is_active, created_at, updated_at
		FROM discount_rules
		WHERE partner_id = $1 AND (branch_id IS NULL OR branch_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*models.DiscountRule
	for rows.Next() {
		rule := &models.DiscountRule{}
		if err := rows.Scan(&rule.ID, &rule.PartnerID, &rule.BranchID, &rule.Name, &rule.DiscountType,
			&rule.Percent, &rule.Amount, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
