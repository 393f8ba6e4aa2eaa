package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
)

type CashierAccountRepository interface {
	Create(ctx context.Context, account *models.CashierAccount) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.CashierAccount, error)
	Update(ctx context.Context, account *models.CashierAccount) error
	SetActive(ctx context.Context, partnerID, id uuid.UUID, active bool) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.CashierAccount, error)
}

type cashierAccountRepo struct {
	db Database
}

func NewCashierAccountRepository(db Database) CashierAccountRepository {
	return &cashierAccountRepo{db: db}
}

func (r *cashierAccountRepo) Create(ctx context.Context, account *models.CashierAccount) error {
	query := `
		INSERT INTO cashier_accounts (id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, account.ID, account.PartnerID, account.BranchID,
		account.FullName, account.Username, account.PasswordHash, account.IsActive)
	return err
}

func (r *cashierAccountRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.CashierAccount, error) {
	account := &models.CashierAccount{}
	query := `
		SELECT id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at
		FROM cashier_accounts
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&account.ID, &account.PartnerID, &account.BranchID,
		&account.FullName, &account.Username, &account.PasswordHash, &account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (r *cashierAccountRepo) Update(ctx context.Context, account *models.CashierAccount) error {
	query := `
		UPDATE cashier_accounts
		SET full_name = $1, username = $2, password_hash = $3, is_active = $4, updated_at = NOW()
		WHERE partner_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, account.FullName, account.Username, account.PasswordHash,
		account.IsActive, account.PartnerID, account.ID)
	return err
}

func (r *cashierAccountRepo) SetActive(ctx context.Context, partnerID, id uuid.UUID, active bool) error {
	query := `UPDATE cashier_accounts SET is_active = $1, updated_at = NOW() WHERE partner_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, active, partnerID, id)
	return err
}

func (r *cashierAccountRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM cashier_accounts WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *cashierAccountRepo) ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.CashierAccount, error) {
	query := `
		SELECT id, partner_id, branch_id, full_name, username, password_hash, is_active, created_at, updated_at
		FROM cashier_accounts
		WHERE partner_id = $1 AND branch_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.CashierAccount
	for rows.Next() {
		account := &models.CashierAccount{}
		if err := rows.Scan(&account.ID, &account.PartnerID, &account.BranchID, &account.FullName,
			&account.Username, &account.PasswordHash, &account.IsActive, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

type PinOperatorRepository interface {
	Create(ctx context.Context, operator *models.PinOperator) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.PinOperator, error)
	Update(ctx context.Context, operator *models.PinOperator) error
	SetActive(ctx context.Context, partnerID, id uuid.UUID, active bool) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.PinOperator, error)
}

type pinOperatorRepo struct {
	db Database
}

func NewPinOperatorRepository(db Database) PinOperatorRepository {
	return &pinOperatorRepo{db: db}
}

func (r *pinOperatorRepo) Create(ctx context.Context, operator *models.PinOperator) error {
	query := `
		INSERT INTO pin_operators (id, partner_id, branch_id, full_name, pin_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, operator.ID, operator.PartnerID, operator.BranchID,
		operator.FullName, operator.PinHash, operator.IsActive)
	return err
}

func (r *pinOperatorRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.PinOperator, error) {
	operator := &models.PinOperator{}
	query := `
		SELECT id, partner_id, branch_id, full_name, pin_hash, is_active, created_at, updated_at
		FROM pin_operators
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&operator.ID, &operator.PartnerID, &operator.BranchID,
		&operator.FullName, &operator.PinHash, &operator.IsActive, &operator.CreatedAt, &operator.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return operator, nil
}

func (r *pinOperatorRepo) Update(ctx context.Context, operator *models.PinOperator) error {
	query := `
		UPDATE pin_operators
		SET full_name = $1, pin_hash = $2, is_active = $3, updated_at = NOW()
		WHERE partner_id = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, operator.FullName, operator.PinHash, operator.IsActive,
		operator.PartnerID, operator.ID)
	return err
}

func (r *pinOperatorRepo) SetActive(ctx context.Context, partnerID, id uuid.UUID, active bool) error {
	query := `UPDATE pin_operators SET is_active = $1, updated_at = NOW() WHERE partner_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, active, partnerID, id)
	return err
}

func (r *pinOperatorRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM pin_operators WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *pinOperatorRepo) ListByBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.PinOperator, error) {
	query := `
		SELECT id, partner_id, branch_id, full_name, pin_hash, is_active, created_at, updated_at
		FROM pin_operators
		WHERE partner_id = $1 AND branch_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var operators []*models.PinOperator
	for rows.Next() {
		operator := &models.PinOperator{}
		if err := rows.Scan(&operator.ID, &operator.PartnerID, &operator.BranchID, &operator.FullName,
			&operator.PinHash, &operator.IsActive, &operator.CreatedAt, &operator.UpdatedAt); err != nil {
			return nil, err
		}
		operators = append(operators, operator)
	}
	return operators, nil
}
