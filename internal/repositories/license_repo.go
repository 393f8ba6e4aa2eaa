package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type LicenseRepository interface {
	Create(ctx context.Context, license *models.License) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.License, error)
	GetByActivationCode(ctx context.Context, code string) (*models.License, error)
	AssignBranch(ctx context.Context, partnerID, id uuid.UUID, branchID *uuid.UUID) error
	BindDevice(ctx context.Context, id uuid.UUID, deviceID, deviceName string) error
	ResetDevice(ctx context.Context, partnerID, id uuid.UUID) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.License, error)
	CountByPartner(ctx context.Context, partnerID uuid.UUID) (int, error)
	CountBoundByPartner(ctx context.Context, partnerID uuid.UUID) (int, error)
}

type licenseRepo struct {
	db Database
}

func NewLicenseRepository(db Database) LicenseRepository {
	return &licenseRepo{db: db}
}

func (r *licenseRepo) Create(ctx context.Context, license *models.License) error {
	query := `
		INSERT INTO licenses (id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, license.ID, license.PartnerID, license.ActivationCode,
		license.DeviceID, license.DeviceName, license.BranchID)
	return err
}

func (r *licenseRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.License, error) {
	license := &models.License{}
	query := `
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&license.ID, &license.PartnerID,
		&license.ActivationCode, &license.DeviceID, &license.DeviceName, &license.BranchID,
		&license.CreatedAt, &license.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return license, nil
}

func (r *licenseRepo) GetByActivationCode(ctx context.Context, code string) (*models.License, error) {
	license := &models.License{}
	query := `
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE activation_code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&license.ID, &license.PartnerID,
		&license.ActivationCode, &license.DeviceID, &license.DeviceName, &license.BranchID,
		&license.CreatedAt, &license.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return license, nil
}

func (r *licenseRepo) AssignBranch(ctx context.Context, partnerID, id uuid.UUID, branchID *uuid.UUID) error {
	query := `UPDATE licenses SET branch_id = $1, updated_at = NOW() WHERE partner_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, branchID, partnerID, id)
	return err
}

func (r *licenseRepo) BindDevice(ctx context.Context, id uuid.UUID, deviceID, deviceName string) error {
	query := `UPDATE licenses SET device_id = $1, device_name = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, deviceID, deviceName, id)
	return err
}

// ResetDevice clears the device binding so the activation code can be
// used again on another device.
func (r *licenseRepo) ResetDevice(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `UPDATE licenses SET device_id = '', device_name = '', updated_at = NOW() WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *licenseRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM licenses WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *licenseRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.License, error) {
	query := `
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var licenses []*models.License
	for rows.Next() {
		license := &models.License{}
		if err := rows.Scan(&license.ID, &license.PartnerID, &license.ActivationCode, &license.DeviceID,
			&license.DeviceName, &license.BranchID, &license.CreatedAt, &license.UpdatedAt); err != nil {
			return nil, err
		}
		licenses = append(licenses, license)
	}
	return licenses, nil
}

func (r *licenseRepo) CountByPartner(ctx context.Context, partnerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM licenses WHERE partner_id = $1`
	err := r.db.QueryRow(ctx, query, partnerID).Scan(&count)
	return count, err
}

func (r *licenseRepo) CountBoundByPartner(ctx context.Context, partnerID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM licenses WHERE partner_id = $1 AND device_id <> ''`
	err := r.db.QueryRow(ctx, query, partnerID).Scan(&count)
	return count, err
}
