package services

import (
	"context"
	"testing"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	repo      *MockProductRepository
	svc       ProductService
	partnerID uuid.UUID
	branchID  uuid.UUID
	context   context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.repo = new(MockProductRepository)
	suite.svc = NewProductService(suite.repo)
	suite.partnerID = uuid.New()
	suite.branchID = uuid.New()
	suite.context = context.Background()
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) TestCreate_OwnerCreatesGeneralItem() {
	product := &models.Product{
		PartnerID: suite.partnerID,
		Name:      "Kopi Susu",
		Price:     18000,
	}

	suite.repo.On("Create", suite.context, mock.AnythingOfType("*models.Product")).Return(nil)

	err := suite.svc.Create(suite.context, nil, product)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, product.ID)
	assert.Equal(suite.T(), models.ScopeGeneral, product.Scope())
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreate_OwnerCannotCreateLocalItem() {
	product := &models.Product{
		PartnerID: suite.partnerID,
		BranchID:  &suite.branchID,
		Name:      "Menu Cabang",
		Price:     12000,
	}

	err := suite.svc.Create(suite.context, nil, product)
	assert.Error(suite.T(), err)
	suite.repo.AssertNotCalled(suite.T(), "Create")
}

func (suite *ProductServiceTestSuite) TestCreate_BranchCreatesLocalItem() {
	product := &models.Product{
		PartnerID: suite.partnerID,
		BranchID:  &suite.branchID,
		Name:      "Es Teh Lokal",
		Price:     8000,
	}

	suite.repo.On("Create", suite.context, mock.AnythingOfType("*models.Product")).Return(nil)

	err := suite.svc.Create(suite.context, &suite.branchID, product)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ScopeLocal, product.Scope())
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreate_BranchCannotCreateGeneralItem() {
	product := &models.Product{
		PartnerID: suite.partnerID,
		Name:      "Menu Pusat",
		Price:     15000,
	}

	err := suite.svc.Create(suite.context, &suite.branchID, product)
	assert.Error(suite.T(), err)
	suite.repo.AssertNotCalled(suite.T(), "Create")
}

func (suite *ProductServiceTestSuite) TestCreate_BranchCannotCreateForOtherBranch() {
	otherBranch := uuid.New()
	product := &models.Product{
		PartnerID: suite.partnerID,
		BranchID:  &otherBranch,
		Name:      "Menu Cabang Lain",
		Price:     10000,
	}

	err := suite.svc.Create(suite.context, &suite.branchID, product)
	assert.Error(suite.T(), err)
	suite.repo.AssertNotCalled(suite.T(), "Create")
}

func (suite *ProductServiceTestSuite) TestUpdate_ScopeIsFixedAtCreation() {
	productID := uuid.New()
	existing := &models.Product{
		ID:        productID,
		PartnerID: suite.partnerID,
		BranchID:  nil, // general
		Name:      "Kopi Hitam",
		Price:     10000,
	}

	update := &models.Product{
		ID:        productID,
		PartnerID: suite.partnerID,
		BranchID:  &suite.branchID, // attempt to move to local
		Name:      "Kopi Hitam",
		Price:     11000,
	}

	suite.repo.On("GetByID", suite.context, suite.partnerID, productID).Return(existing, nil)
	suite.repo.On("Update", suite.context, mock.MatchedBy(func(p *models.Product) bool {
		return p.BranchID == nil
	})).Return(nil)

	err := suite.svc.Update(suite.context, nil, update)
	assert.NoError(suite.T(), err)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestDelete_BranchCannotDeleteGeneralItem() {
	productID := uuid.New()
	existing := &models.Product{
		ID:        productID,
		PartnerID: suite.partnerID,
		BranchID:  nil,
	}

	suite.repo.On("GetByID", suite.context, suite.partnerID, productID).Return(existing, nil)

	err := suite.svc.Delete(suite.context, &suite.branchID, suite.partnerID, productID)
	assert.Error(suite.T(), err)
	suite.repo.AssertNotCalled(suite.T(), "Delete")
}

func (suite *ProductServiceTestSuite) TestList_OwnerSeesFullCatalog() {
	products := []*models.Product{
		{ID: uuid.New(), PartnerID: suite.partnerID},
		{ID: uuid.New(), PartnerID: suite.partnerID, BranchID: &suite.branchID},
	}

	suite.repo.On("List", suite.context, suite.partnerID, 10, 0).Return(products, nil)

	result, err := suite.svc.List(suite.context, suite.partnerID, nil, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestList_BranchSeesGeneralPlusOwnLocal() {
	products := []*models.Product{
		{ID: uuid.New(), PartnerID: suite.partnerID},
		{ID: uuid.New(), PartnerID: suite.partnerID, BranchID: &suite.branchID},
	}

	suite.repo.On("ListVisibleToBranch", suite.context, suite.partnerID, suite.branchID, 10, 0).Return(products, nil)

	result, err := suite.svc.List(suite.context, suite.partnerID, &suite.branchID, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), models.ScopeGeneral, result[0].Scope())
	assert.Equal(suite.T(), models.ScopeLocal, result[1].Scope())
	suite.repo.AssertExpectations(suite.T())
}
