package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type VoidRequestRepository interface {
	Create(ctx context.Context, request *models.VoidRequest) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.VoidRequest, error)
	UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) error
	ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, status string, limit, offset int) ([]*models.VoidRequest, error)
}

type voidRequestRepo struct {
	db Database
}

func NewVoidRequestRepository(db Database) VoidRequestRepository {
	return &voidRequestRepo{db: db}
}

func (r *voidRequestRepo) Create(ctx context.Context, request *models.VoidRequest) error {
	query := `
		INSERT INTO void_requests (id, partner_id, branch_id, transaction_id, cashier_name, reason, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.PartnerID, request.BranchID,
		request.TransactionID, request.CashierName, request.Reason, request.Status)
	return err
}

func (r *voidRequestRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.VoidRequest, error) {
	request := &models.VoidRequest{}
	query := `
		SELECT id, partner_id, branch_id, transaction_id, cashier_name, reason, status, created_at, updated_at
		FROM void_requests
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&request.ID, &request.PartnerID, &request.BranchID,
		&request.TransactionID, &request.CashierName, &request.Reason, &request.Status,
		&request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *voidRequestRepo) UpdateStatus(ctx context.Context, partnerID, id uuid.UUID, status string) error {
	query := `UPDATE void_requests SET status = $1, updated_at = NOW() WHERE partner_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, status, partnerID, id)
	return err
}

// ListByBranch filters by status when one is given; an empty status
// returns every request for the branch.
func (r *voidRequestRepo) ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, status string, limit, offset int) ([]*models.VoidRequest, error) {
	query := `
		SELECT id, partner_id, branch_id, transaction_id, cashier_name, reason, status, created_at, updated_at
		FROM void_requests
		WHERE partner_id = $1 AND branch_id = $2 AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.VoidRequest
	for rows.Next() {
		request := &models.VoidRequest{}
		if err := rows.Scan(&request.ID, &request.PartnerID, &request.BranchID, &request.TransactionID,
			&request.CashierName, &request.Reason, &request.Status, &request.CreatedAt, &request.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, nil
}
