package services

import (
	"context"
	"testing"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LicenseServiceTestSuite struct {
	suite.Suite
	licRepo    *MockLicenseRepository
	planRepo   *MockSubscriptionPlanRepository
	subRepo    *MockPartnerSubscriptionRepository
	orderRepo  *MockSubscriptionOrderRepository
	branchRepo *MockBranchRepository
	cacheSvc   *MockCacheService
	svc        LicenseService
	partnerID  uuid.UUID
	planID     uuid.UUID
	context    context.Context
}

func (suite *LicenseServiceTestSuite) SetupTest() {
	suite.licRepo = new(MockLicenseRepository)
	suite.planRepo = new(MockSubscriptionPlanRepository)
	suite.subRepo = new(MockPartnerSubscriptionRepository)
	suite.orderRepo = new(MockSubscriptionOrderRepository)
	suite.branchRepo = new(MockBranchRepository)
	suite.cacheSvc = new(MockCacheService)
	subSvc := NewSubscriptionService(suite.planRepo, suite.subRepo, suite.orderRepo, suite.branchRepo, suite.licRepo)
	suite.svc = NewLicenseService(suite.licRepo, subSvc, suite.cacheSvc)
	suite.partnerID = uuid.New()
	suite.planID = uuid.New()
	suite.context = context.Background()
}

func TestLicenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LicenseServiceTestSuite))
}

func (suite *LicenseServiceTestSuite) mockActivePlan(maxDevices int) {
	sub := &models.PartnerSubscription{
		ID:        uuid.New(),
		PartnerID: suite.partnerID,
		PlanID:    suite.planID,
		Status:    models.SubscriptionStatusActive,
		EndDate:   time.Now().Add(24 * time.Hour),
	}
	plan := &models.SubscriptionPlan{
		ID:         suite.planID,
		MaxDevices: maxDevices,
		IsActive:   true,
	}
	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(sub, nil)
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(plan, nil)
}

func (suite *LicenseServiceTestSuite) TestCreate_GeneratesActivationCode() {
	suite.licRepo.On("Create", suite.context, mock.MatchedBy(func(l *models.License) bool {
		return len(l.ActivationCode) == 13 && l.PartnerID == suite.partnerID
	})).Return(nil)
	suite.cacheSvc.On("InvalidatePartnerLicenses", suite.context, suite.partnerID).Return(nil)

	license, err := suite.svc.Create(suite.context, suite.partnerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LicensePending, license.Status)
	suite.licRepo.AssertExpectations(suite.T())
}

func (suite *LicenseServiceTestSuite) TestList_PopulatesDerivedStatus() {
	branchID := uuid.New()
	licenses := []*models.License{
		{ID: uuid.New(), PartnerID: suite.partnerID},
		{ID: uuid.New(), PartnerID: suite.partnerID, BranchID: &branchID},
		{ID: uuid.New(), PartnerID: suite.partnerID, BranchID: &branchID, DeviceID: "dev-1"},
	}

	suite.cacheSvc.On("GetPartnerLicenses", suite.context, suite.partnerID).Return(nil, nil)
	suite.licRepo.On("List", suite.context, suite.partnerID, 10, 0).Return(licenses, nil)
	suite.cacheSvc.On("SetPartnerLicenses", suite.context, suite.partnerID, licenses, licenseCacheTTL).Return(nil)

	result, err := suite.svc.List(suite.context, suite.partnerID, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LicensePending, result[0].Status)
	assert.Equal(suite.T(), models.LicenseAssigned, result[1].Status)
	assert.Equal(suite.T(), models.LicenseActive, result[2].Status)
}

func (suite *LicenseServiceTestSuite) TestList_CacheHitHonorsRequestedLimit() {
	cached := make([]*models.License, 10)
	for i := range cached {
		cached[i] = &models.License{ID: uuid.New(), PartnerID: suite.partnerID, Status: models.LicensePending}
	}

	suite.cacheSvc.On("GetPartnerLicenses", suite.context, suite.partnerID).Return(cached, nil)

	result, err := suite.svc.List(suite.context, suite.partnerID, 2, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	suite.licRepo.AssertNotCalled(suite.T(), "List")
}

func (suite *LicenseServiceTestSuite) TestList_ShortCacheFallsThroughToRepo() {
	cached := []*models.License{
		{ID: uuid.New(), PartnerID: suite.partnerID, Status: models.LicensePending},
	}
	fromRepo := []*models.License{
		{ID: uuid.New(), PartnerID: suite.partnerID},
		{ID: uuid.New(), PartnerID: suite.partnerID},
	}

	suite.cacheSvc.On("GetPartnerLicenses", suite.context, suite.partnerID).Return(cached, nil)
	suite.licRepo.On("List", suite.context, suite.partnerID, 10, 0).Return(fromRepo, nil)
	suite.cacheSvc.On("SetPartnerLicenses", suite.context, suite.partnerID, fromRepo, licenseCacheTTL).Return(nil)

	result, err := suite.svc.List(suite.context, suite.partnerID, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	suite.licRepo.AssertExpectations(suite.T())
}

func (suite *LicenseServiceTestSuite) TestAssignBranch_RejectsDeviceBoundLicense() {
	licenseID := uuid.New()
	branchID := uuid.New()
	license := &models.License{
		ID:        licenseID,
		PartnerID: suite.partnerID,
		DeviceID:  "dev-7",
	}

	suite.licRepo.On("GetByID", suite.context, suite.partnerID, licenseID).Return(license, nil)

	err := suite.svc.AssignBranch(suite.context, suite.partnerID, licenseID, &branchID)
	assert.Error(suite.T(), err)
	suite.licRepo.AssertNotCalled(suite.T(), "AssignBranch")
}

func (suite *LicenseServiceTestSuite) TestActivate_Success() {
	branchID := uuid.New()
	license := &models.License{
		ID:             uuid.New(),
		PartnerID:      suite.partnerID,
		ActivationCode: "KSR-AAAA-BBBB",
		BranchID:       &branchID,
	}

	suite.mockActivePlan(5)
	suite.licRepo.On("GetByActivationCode", suite.context, "KSR-AAAA-BBBB").Return(license, nil)
	suite.licRepo.On("CountBoundByPartner", suite.context, suite.partnerID).Return(1, nil)
	suite.licRepo.On("BindDevice", suite.context, license.ID, "dev-9", "Kasir Depan").Return(nil)
	suite.cacheSvc.On("InvalidatePartnerLicenses", suite.context, suite.partnerID).Return(nil)

	result, err := suite.svc.Activate(suite.context, "KSR-AAAA-BBBB", "dev-9", "Kasir Depan")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.LicenseActive, result.Status)
	assert.Equal(suite.T(), "dev-9", result.DeviceID)
}

func (suite *LicenseServiceTestSuite) TestActivate_AlreadyBound() {
	license := &models.License{
		ID:             uuid.New(),
		PartnerID:      suite.partnerID,
		ActivationCode: "KSR-CCCC-DDDD",
		DeviceID:       "dev-1",
	}

	suite.licRepo.On("GetByActivationCode", suite.context, "KSR-CCCC-DDDD").Return(license, nil)

	result, err := suite.svc.Activate(suite.context, "KSR-CCCC-DDDD", "dev-2", "Kasir Baru")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	suite.licRepo.AssertNotCalled(suite.T(), "BindDevice")
}

func (suite *LicenseServiceTestSuite) TestActivate_DeviceQuotaExceeded() {
	license := &models.License{
		ID:             uuid.New(),
		PartnerID:      suite.partnerID,
		ActivationCode: "KSR-EEEE-FFFF",
	}

	suite.mockActivePlan(2)
	suite.licRepo.On("GetByActivationCode", suite.context, "KSR-EEEE-FFFF").Return(license, nil)
	suite.licRepo.On("CountBoundByPartner", suite.context, suite.partnerID).Return(2, nil)

	result, err := suite.svc.Activate(suite.context, "KSR-EEEE-FFFF", "dev-3", "Kasir Tiga")
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), result)
	suite.licRepo.AssertNotCalled(suite.T(), "BindDevice")
}

func (suite *LicenseServiceTestSuite) TestDelete_RejectsActiveLicense() {
	licenseID := uuid.New()
	license := &models.License{
		ID:        licenseID,
		PartnerID: suite.partnerID,
		DeviceID:  "dev-5",
	}

	suite.licRepo.On("GetByID", suite.context, suite.partnerID, licenseID).Return(license, nil)

	err := suite.svc.Delete(suite.context, suite.partnerID, licenseID)
	assert.Error(suite.T(), err)
	suite.licRepo.AssertNotCalled(suite.T(), "Delete")
}
