package repositories

import (
	"context"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Product, error)
	ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepository(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, partner_id, branch_id, category_id, name, sku, price, image_key, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.PartnerID, product.BranchID, product.CategoryID,
		product.Name, product.SKU, product.Price, product.ImageKey, product.IsActive)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, partner_id, branch_id, category_id, name, sku, price, image_key, is_active, created_at, updated_at
		FROM products
		WHERE partner_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, partnerID, id).Scan(&product.ID, &product.PartnerID, &product.BranchID,
		&product.CategoryID, &product.Name, &product.SKU, &product.Price, &product.ImageKey,
		&product.IsActive, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET branch_id = $1, category_id = $2, name = $3, sku = $4, price = $5, image_key = $6, is_active = $7, updated_at = NOW()
		WHERE partner_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, product.BranchID, product.CategoryID, product.Name, product.SKU,
		product.Price, product.ImageKey, product.IsActive, product.PartnerID, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE partner_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, partnerID, id)
	return err
}

func (r *productRepo) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, partner_id, branch_id, category_id, name, sku, price, image_key, is_active, created_at, updated_at
		FROM products
		WHERE partner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListVisibleToBranch returns general catalog rows plus the branch's own
// local rows in one pass.
func (r *productRepo) ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT id, partner_id, branch_id, category_id, name, sku, price, image_key, is_active, created_at, updated_at
		FROM products
		WHERE partner_id = $1 AND (branch_id IS NULL OR branch_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, partnerID, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.PartnerID, &product.BranchID, &product.CategoryID,
			&product.Name, &product.SKU, &product.Price, &product.ImageKey, &product.IsActive,
			&product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}
