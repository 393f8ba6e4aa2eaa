package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SubscriptionOrderRepository interface {
	Create(ctx context.Context, order *models.SubscriptionOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionOrder, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error
	AttachProofImage(ctx context.Context, partnerID, id uuid.UUID, imageKey string) error
	ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.SubscriptionOrder, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionOrder, error)
}

type subscriptionOrderRepo struct {
	db Database
}

func NewSubscriptionOrderRepository(db Database) SubscriptionOrderRepository {
	return &subscriptionOrderRepo{db: db}
}

func (r *subscriptionOrderRepo) Create(ctx context.Context, order *models.SubscriptionOrder) error {
	query := `
		INSERT INTO subscription_orders (id, partner_id, plan_id, amount, payment_status, proof_image_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, order.ID, order.PartnerID, order.PlanID, order.Amount,
		order.PaymentStatus, order.ProofImageKey)
	return err
}

func (r *subscriptionOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionOrder, error) {
	order := &models.SubscriptionOrder{}
	query := `
		SELECT id, partner_id, plan_id, amount, payment_status, proof_image_key, created_at, updated_at
		FROM subscription_orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.PartnerID, &order.PlanID,
		&order.Amount, &order.PaymentStatus, &order.ProofImageKey, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *subscriptionOrderRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE subscription_orders SET payment_status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *subscriptionOrderRepo) AttachProofImage(ctx context.Context, partnerID, id uuid.UUID, imageKey string) error {
	query := `UPDATE subscription_orders SET proof_image_key = $1, updated_at = NOW() WHERE partner_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, imageKey, partnerID, id)
	return err
}

func (r *subscriptionOrderRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.SubscriptionOrder, error) {
	query := `
		SELECT id, partner_id, plan_id, amount, payment_status, proof_image_key, created_at, updated_at
		FROM subscription_orders
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptionOrders(rows)
}

func (r *subscriptionOrderRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionOrder, error) {
	query := `
		SELECT id, partner_id, plan_id, amount, payment_status, proof_image_key, created_at, updated_at
		FROM subscription_orders
		WHERE payment_status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptionOrders(rows)
}

func scanSubscriptionOrders(rows pgx.Rows) ([]*models.SubscriptionOrder, error) {
	var orders []*models.SubscriptionOrder
	for rows.Next() {
		order := &models.SubscriptionOrder{}
		if err := rows.Scan(&order.ID, &order.PartnerID, &order.PlanID, &order.Amount,
			&order.PaymentStatus, &order.ProofImageKey, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
