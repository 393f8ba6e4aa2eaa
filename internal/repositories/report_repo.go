package repositories

import (
	"context"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type ReportRepository interface {
	SalesByDay(ctx context.Context, partnerID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*models.SalesReportRow, error)
}

type reportRepo struct {
	db Database
}

func NewReportRepository(db Database) ReportRepository {
	return &reportRepo{db: db}
}

// SalesByDay aggregates the transactions table per calendar day. A nil
// branchID rolls up every branch of the partner.
func (r *reportRepo) SalesByDay(ctx context.Context, partnerID uuid.UUID, branchID *uuid.UUID, from, to time.Time) ([]*models.SalesReportRow, error) {
	query := `
		SELECT date_trunc('day', t.created_at) AS day,
		       COALESCE(SUM(t.total), 0) AS revenue,
		       COUNT(*) AS transaction_count,
		       COUNT(*) FILTER (WHERE t.voided) AS void_count
		FROM transactions t
		WHERE t.partner_id = $1
		  AND ($2::uuid IS NULL OR t.branch_id = $2)
		  AND t.created_at >= $3 AND t.created_at < $4
		GROUP BY 1
		ORDER BY 1 ASC
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.SalesReportRow
	for rows.Next() {
		row := &models.SalesReportRow{}
		if err := rows.Scan(&row.Day, &row.Revenue, &row.TransactionCount, &row.VoidCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, nil
}
