package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type BranchAdminRepository interface {
	Create(ctx context.Context, admin *models.BranchAdmin) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.BranchAdmin, error)
	GetByUsername(ctx context.Context, username string) (*models.BranchAdmin, error)
	Update(ctx context.Context, admin *models.BranchAdmin) error
	SetActive(ctx context.Context, partnerID, id uuid.UUID, active bool) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.BranchAdmin, error)
}

type branchAdminRepo struct {
	db Database
}

func NewBranchAdminRepository(db Database) BranchAdminRepository {
	return &branchAdminRepo{db: db}
}

func (r *branchAdminRepo) Create(ctx context.Context, admin *models.BranchAdmin) error {
	query := `
		INSERT INTO branch_admins (id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, admin.ID, admin.PartnerID, admin.BranchID, admin.FullName,
		admin.Username, admin.PasswordHash, admin.IsActive)
	return err
}

func (r *branchAdminRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.BranchAdmin, error) {
	admin := &models.BranchAdmin{}
	query := `
		SELECT id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at
		FROM branch_admins
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&admin.ID, &admin.PartnerID, &admin.BranchID,
		&admin.FullName, &admin.Username, &admin.PasswordHash, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *branchAdminRepo) GetByUsername(ctx context.Context, username string) (*models.BranchAdmin, error) {
	admin := &models.BranchAdmin{}
	query := `
		SELECT id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at
		FROM branch_admins
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(&admin.ID, &admin.PartnerID, &admin.BranchID,
		&admin.FullName, &admin.Username, &admin.PasswordHash, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *branchAdminRepo) Update(ctx context.Context, admin *models.BranchAdmin) error {
	query := `
		UPDATE branch_admins
		SET branch_id = $1, full_name = $2, username = $3, password_hash = $4, is_active = $5, updated_at = NOW()
		WHERE partner_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, admin.BranchID, admin.FullName, admin.Username,
		admin.PasswordHash, admin.IsActive, admin.PartnerID, admin.ID)
	return err
}

func (r *branchAdminRepo) SetActive(ctx context.Context, partnerID, id uuid.UUID, active bool) error {
	query := `UPDATE branch_admins SET is_active = $1, updated_at = NOW() WHERE partner_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, active, partnerID, id)
	return err
}

func (r *branchAdminRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM branch_admins WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *branchAdminRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.BranchAdmin, error) {
	query := `
		SELECT id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at
		FROM branch_admins
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []*models.BranchAdmin
	for rows.Next() {
		admin := &models.BranchAdmin{}
		if err := rows.Scan(&admin.ID, &admin.PartnerID, &admin.BranchID, &admin.FullName, &admin.Username,
			&admin.PasswordHash, &admin.IsActive, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, nil
}
