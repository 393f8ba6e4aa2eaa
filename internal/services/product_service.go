package services

import (
	"context"
	"fmt"

	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
)

// ProductService owns catalog scoping: general items (no branch) are
// managed by the partner owner and visible everywhere, local items belong
// to a single branch. actorBranchID is nil for owner-level users.
type ProductService interface {
	Create(ctx context.Context, actorBranchID *uuid.UUID, product *models.Product) error
	Update(ctx context.Context, actorBranchID *uuid.UUID, product *models.Product) error
	Delete(ctx context.Context, actorBranchID *uuid.UUID, partnerID, id uuid.UUID) error
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, partnerID uuid.UUID, actorBranchID *uuid.UUID, limit, offset int) ([]*models.Product, error)
}

type productService struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, actorBranchID *uuid.UUID, product *models.Product) error {
	if err := models.CheckScopeWrite(actorBranchID, product.BranchID); err != nil {
		return err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return s.productRepo.Create(ctx, product)
}

func (s *productService) Update(ctx context.Context, actorBranchID *uuid.UUID, product *models.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.PartnerID, product.ID)
	if err != nil {
		return fmt.Errorf("product not found")
	}
	if err := models.CheckScopeWrite(actorBranchID, existing.BranchID); err != nil {
		return err
	}
	// Scope is fixed at creation
	product.BranchID = existing.BranchID
	return s.productRepo.Update(ctx, product)
}

func (s *productService) Delete(ctx context.Context, actorBranchID *uuid.UUID, partnerID, id uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		return fmt.Errorf("product not found")
	}
	if err := models.CheckScopeWrite(actorBranchID, existing.BranchID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, partnerID, id)
}

func (s *productService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, partnerID, id)
}

// List returns the whole catalog for owner-level users and the general
// plus own-branch slice for branch users.
func (s *productService) List(ctx context.Context, partnerID uuid.UUID, actorBranchID *uuid.UUID, limit, offset int) ([]*models.Product, error) {
	if actorBranchID == nil {
		return s.productRepo.List(ctx, partnerID, limit, offset)
	}
	return s.productRepo.ListVisibleToBranch(ctx, partnerID, *actorBranchID, limit, offset)
}
