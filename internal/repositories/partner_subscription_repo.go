package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type PartnerSubscriptionRepository interface {
	Create(ctx context.Context, sub *models.PartnerSubscription) error
	GetActiveByPartner(ctx context.Context, partnerID uuid.UUID) (*models.PartnerSubscription, error)
	ExtendEndDate(ctx context.Context, id uuid.UUID, days int) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.PartnerSubscription, error)
	MarkExpired(ctx context.Context) (int64, error)
}

type partnerSubscriptionRepo struct {
	db Database
}

func NewPartnerSubscriptionRepository(db Database) PartnerSubscriptionRepository {
	return &partnerSubscriptionRepo{db: db}
}

func (r *partnerSubscriptionRepo) Create(ctx context.Context, sub *models.PartnerSubscription) error {
	query := `
		INSERT INTO partner_subscriptions (id, partner_id, plan_id, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, sub.ID, sub.PartnerID, sub.PlanID, sub.Status, sub.StartDate, sub.EndDate)
	return err
}

func (r *partnerSubscriptionRepo) GetActiveByPartner(ctx context.Context, partnerID uuid.UUID) (*models.PartnerSubscription, error) {
	sub := &models.PartnerSubscription{}
	query := `
		SELECT id, partner_id, plan_id, status, start_date, end_date, created_at, updated_at
		FROM partner_subscriptions
		WHERE partner_id = $1 AND status = 'active'
		ORDER BY end_date DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, partnerID).Scan(&sub.ID, &sub.PartnerID, &sub.PlanID,
		&sub.Status, &sub.StartDate, &sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *partnerSubscriptionRepo) ExtendEndDate(ctx context.Context, id uuid.UUID, days int) error {
	query := `UPDATE partner_subscriptions SET end_date = end_date + make_interval(days => $1), updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, days, id)
	return err
}

func (r *partnerSubscriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE partner_subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *partnerSubscriptionRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.PartnerSubscription, error) {
	query := `
		SELECT id, partner_id, plan_id, status, start_date, end_date, created_at, updated_at
		FROM partner_subscriptions
		WHERE partner_id = $1
		ORDER BY start_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*models.PartnerSubscription
	for rows.Next() {
		sub := &models.PartnerSubscription{}
		if err := rows.Scan(&sub.ID, &sub.PartnerID, &sub.PlanID, &sub.Status, &sub.StartDate,
			&sub.EndDate, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// MarkExpired flips every active subscription whose end date has passed.
// Run from the scheduler.
func (r *partnerSubscriptionRepo) MarkExpired(ctx context.Context) (int64, error) {
	query := `UPDATE partner_subscriptions SET status = 'expired', updated_at = NOW() WHERE status = 'active' AND end_date < NOW()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
