package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type ShiftScheduleRepository interface {
	Create(ctx context.Context, shift *models.ShiftSchedule) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.ShiftSchedule, error)
	Update(ctx context.Context, shift *models.ShiftSchedule) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.ShiftSchedule, error)
}

type shiftScheduleRepo struct {
	db Database
}

func NewShiftScheduleRepository(db Database) ShiftScheduleRepository {
	return &shiftScheduleRepo{db: db}
}

func (r *shiftScheduleRepo) Create(ctx context.Context, shift *models.ShiftSchedule) error {
	query := `
		INSERT INTO shift_schedules (id, partner_id, branch_id, name, start_time, end_time, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, shift.ID, shift.PartnerID, shift.BranchID, shift.Name,
		shift.StartTime, shift.EndTime, shift.IsActive)
	return err
}

func (r *shiftScheduleRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.ShiftSchedule, error) {
	shift := &models.ShiftSchedule{}
	query := `
		SELECT id, partner_id, branch_id, name, start_time, end_time, is_active, created_at, updated_at
		FROM shift_schedules
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&shift.ID, &shift.PartnerID, &shift.BranchID,
		&shift.Name, &shift.StartTime, &shift.EndTime, &shift.IsActive, &shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *shiftScheduleRepo) Update(ctx context.Context, shift *models.ShiftSchedule) error {
	query := `
		UPDATE shift_schedules
		SET name = $1, start_time = $2, end_time = $3, is_active = $4, updated_at = NOW()
		WHERE partner_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, shift.Name, shift.StartTime, shift.EndTime, shift.IsActive,
		shift.PartnerID, shift.ID)
	return err
}

func (r *shiftScheduleRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM shift_schedules WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *shiftScheduleRepo) ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.ShiftSchedule, error) {
	query := `
		SELECT id, partner_id, branch_id, name, start_time, end_time, is_active, created_at, updated_at
		FROM shift_schedules
		WHERE partner_id = $1 AND branch_id = $2
		ORDER BY start_time ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []*models.ShiftSchedule
	for rows.Next() {
		shift := &models.ShiftSchedule{}
		if err := rows.Scan(&shift.ID, &shift.PartnerID, &shift.BranchID, &shift.Name, &shift.StartTime,
			&shift.EndTime, &shift.IsActive, &shift.CreatedAt, &shift.UpdatedAt); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}
