package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Category, error)
	ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.Category, error)
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepository(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (id, partner_id, branch_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, category.ID, category.PartnerID, category.BranchID, category.Name)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Category, error) {
	category := &models.Category{}
	query := `
		SELECT id, partner_id, branch_id, name, created_at, updated_at
		FROM categories
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&category.ID, &category.PartnerID,
		&category.BranchID, &category.Name, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, updated_at = NOW()
		WHERE partner_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, category.Name, category.PartnerID, category.ID)
	return err
}

func (r *categoryRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *categoryRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Category, error) {
	query := `
		SELECT id, partner_id, branch_id, name, created_at, updated_at
		FROM categories
		WHERE partner_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.PartnerID, &category.BranchID, &category.Name,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (r *categoryRepo) ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.Category, error) {
	query := `
		SELECT id, partner_id, branch_id, name, created_at, updated_at
		FROM categories
		WHERE partner_id = $1 AND (branch_id IS NULL OR branch_id = $2)
		ORDER BY name ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err := rows.Scan(&category.ID, &category.PartnerID, &category.BranchID, &category.Name,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
