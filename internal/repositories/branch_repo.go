package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Branch, error)
	CountByPartner(ctx context.Context, partnerID uuid.UUID) (int, error)
}

type branchRepo struct {
	db Database
}

func NewBranchRepository(db Database) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (id, partner_id, name, address, phone, tax_rate, tax_inclusive, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, branch.ID, branch.PartnerID, branch.Name, branch.Address,
		branch.Phone, branch.TaxRate, branch.TaxInclusive)
	return err
}

func (r *branchRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Branch, error) {
	branch := &models.Branch{}
	query := `
		SELECT id, partner_id, name, address, phone, tax_rate, tax_inclusive, created_at, updated_at
		FROM branches
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&branch.ID, &branch.PartnerID, &branch.Name,
		&branch.Address, &branch.Phone, &branch.TaxRate, &branch.TaxInclusive, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return branch, nil
}

func (r *branchRepo) Update(ctx context.Context, branch *models.Branch) error {
	query := `
		UPDATE branches
		SET name = $1, address = $2, phone = $3, tax_rate = $4, tax_inclusive = $5, updated_at = NOW()
		WHERE partner_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, branch.Name, branch.Address, branch.Phone,
		branch.TaxRate, branch.TaxInclusive, branch.PartnerID, branch.ID)
	return err
}

func (r *branchRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM branches WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *branchRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Branch, error) {
	query := `
		SELECT id, partner_id, name, address, phone, tax_rate, tax_inclusive, created_at, updated_at
		FROM branches
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var branches []*models.Branch
	for rows.Next() {
		branch := &models.Branch{}
		if err := rows.Scan(&branch.ID, &branch.PartnerID, &branch.Name, &branch.Address, &branch.Phone,
			&branch.TaxRate, &branch.TaxInclusive, &branch.CreatedAt, &branch.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, nil
}

func (r *branchRepo) CountByPartner(ctx context.Context, partnerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM branches WHERE partner_id = $1`
	err := r.db.QueryRow(ctx, query, partnerID).Scan(&count)
	return count, err
}
