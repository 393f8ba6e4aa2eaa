package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type PartnerRepository interface {
	Create(ctx context.Context, partner *models.Partner) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	GetByEmail(ctx context.Context, email string) (*models.Partner, error)
	Update(ctx context.Context, partner *models.Partner) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Partner, error)
}

type partnerRepo struct {
	db Database
}

func NewPartnerRepository(db Database) PartnerRepository {
	return &partnerRepo{db: db}
}

func (r *partnerRepo) Create(ctx context.Context, partner *models.Partner) error {
	query := `
		INSERT INTO partners (id, business_name, owner_name, email, phone, status, joined_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, partner.ID, partner.BusinessName, partner.OwnerName,
		partner.Email, partner.Phone, partner.Status, partner.JoinedAt)
	return err
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	partner := &models.Partner{}
	query := `
		SELECT id, business_name, owner_name, email, phone, status, joined_at, created_at, updated_at
		FROM partners
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&partner.ID, &partner.BusinessName, &partner.OwnerName,
		&partner.Email, &partner.Phone, &partner.Status, &partner.JoinedAt, &partner.CreatedAt, &partner.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return partner, nil
}

func (r *partnerRepo) GetByEmail(ctx context.Context, email string) (*models.Partner, error) {
	partner := &models.Partner{}
	query := `
		SELECT id, business_name, owner_name, email, phone, status, joined_at, created_at, updated_at
		FROM partners
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&partner.ID, &partner.BusinessName, &partner.OwnerName,
		&partner.Email, &partner.Phone, &partner.Status, &partner.JoinedAt, &partner.CreatedAt, &partner.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return partner, nil
}

func (r *partnerRepo) Update(ctx context.Context, partner *models.Partner) error {
	query := `
		UPDATE partners
		SET business_name = $1, owner_name = $2, email = $3, phone = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, partner.BusinessName, partner.OwnerName, partner.Email,
		partner.Phone, partner.Status, partner.ID)
	return err
}

func (r *partnerRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE partners SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *partnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM partners WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *partnerRepo) List(ctx context.Context, limit, offset int) ([]*models.Partner, error) {
	query := `
		SELECT id, business_name, owner_name, email, phone, status, joined_at, created_at, updated_at
		FROM partners
		ORDER BY joined_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*models.Partner
	for rows.Next() {
		partner := &models.Partner{}
		if err := rows.Scan(&partner.ID, &partner.BusinessName, &partner.OwnerName, &partner.Email,
			&partner.Phone, &partner.Status, &partner.JoinedAt, &partner.CreatedAt, &partner.UpdatedAt); err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}
	return partners, nil
}
