package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SubscriptionServiceTestSuite struct {
	suite.Suite
	planRepo   *MockSubscriptionPlanRepository
	subRepo    *MockPartnerSubscriptionRepository
	orderRepo  *MockSubscriptionOrderRepository
	branchRepo *MockBranchRepository
	licRepo    *MockLicenseRepository
	svc        SubscriptionService
	partnerID  uuid.UUID
	planID     uuid.UUID
	orderID    uuid.UUID
	context    context.Context
}

func (suite *SubscriptionServiceTestSuite) SetupTest() {
	suite.planRepo = new(MockSubscriptionPlanRepository)
	suite.subRepo = new(MockPartnerSubscriptionRepository)
	suite.orderRepo = new(MockSubscriptionOrderRepository)
	suite.branchRepo = new(MockBranchRepository)
	suite.licRepo = new(MockLicenseRepository)
	suite.svc = NewSubscriptionService(suite.planRepo, suite.subRepo, suite.orderRepo, suite.branchRepo, suite.licRepo)
	suite.partnerID = uuid.New()
	suite.planID = uuid.New()
	suite.orderID = uuid.New()
	suite.context = context.Background()
}

func TestSubscriptionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceTestSuite))
}

func (suite *SubscriptionServiceTestSuite) activePlan() *models.SubscriptionPlan {
	return &models.SubscriptionPlan{
		ID:           suite.planID,
		Name:         "Paket Usaha",
		Price:        299000,
		DurationDays: 30,
		MaxBranches:  3,
		MaxDevices:   5,
		IsActive:     true,
	}
}

func (suite *SubscriptionServiceTestSuite) TestCreateOrder_UsesPlanPrice() {
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(suite.activePlan(), nil)
	suite.orderRepo.On("Create", suite.context, mock.MatchedBy(func(o *models.SubscriptionOrder) bool {
		return o.Amount == 299000 && o.PaymentStatus == models.OrderStatusPendingPayment
	})).Return(nil)

	order, err := suite.svc.CreateOrder(suite.context, suite.partnerID, suite.planID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.partnerID, order.PartnerID)
	suite.orderRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestCreateOrder_InactivePlanRejected() {
	plan := suite.activePlan()
	plan.IsActive = false
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(plan, nil)

	order, err := suite.svc.CreateOrder(suite.context, suite.partnerID, suite.planID)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)
	suite.orderRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *SubscriptionServiceTestSuite) TestApproveOrder_StartsNewSubscription() {
	order := &models.SubscriptionOrder{
		ID:            suite.orderID,
		PartnerID:     suite.partnerID,
		PlanID:        suite.planID,
		PaymentStatus: models.OrderStatusPendingPayment,
	}

	suite.orderRepo.On("GetByID", suite.context, suite.orderID).Return(order, nil)
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(suite.activePlan(), nil)
	suite.orderRepo.On("UpdatePaymentStatus", suite.context, suite.orderID, models.OrderStatusApproved).Return(nil)
	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(nil, pgx.ErrNoRows)
	suite.subRepo.On("Create", suite.context, mock.MatchedBy(func(s *models.PartnerSubscription) bool {
		days := int(s.EndDate.Sub(s.StartDate).Hours() / 24)
		return s.Status == models.SubscriptionStatusActive && days == 30
	})).Return(nil)

	err := suite.svc.ApproveOrder(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	suite.subRepo.AssertExpectations(suite.T())
}

func (suite *SubscriptionServiceTestSuite) TestApproveOrder_ExtendsExistingSubscription() {
	order := &models.SubscriptionOrder{
		ID:            suite.orderID,
		PartnerID:     suite.partnerID,
		PlanID:        suite.planID,
		PaymentStatus: models.OrderStatusPendingPayment,
	}
	existing := &models.PartnerSubscription{
		ID:        uuid.New(),
		PartnerID: suite.partnerID,
		PlanID:    suite.planID,
		Status:    models.SubscriptionStatusActive,
		EndDate:   time.Now().Add(10 * 24 * time.Hour),
	}

	suite.orderRepo.On("GetByID", suite.context, suite.orderID).Return(order, nil)
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(suite.activePlan(), nil)
	suite.orderRepo.On("UpdatePaymentStatus", suite.context, suite.orderID, models.OrderStatusApproved).Return(nil)
	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(existing, nil)
	suite.subRepo.On("ExtendEndDate", suite.context, existing.ID, 30).Return(nil)

	err := suite.svc.ApproveOrder(suite.context, suite.orderID)
	assert.NoError(suite.T(), err)
	suite.subRepo.AssertExpectations(suite.T())
	suite.subRepo.AssertNotCalled(suite.T(), "Create")
}

func (suite *SubscriptionServiceTestSuite) TestApproveOrder_SubscriptionWriteFailureKeepsOrderPending() {
	order := &models.SubscriptionOrder{
		ID:            suite.orderID,
		PartnerID:     suite.partnerID,
		PlanID:        suite.planID,
		PaymentStatus: models.OrderStatusPendingPayment,
	}

	suite.orderRepo.On("GetByID", suite.context, suite.orderID).Return(order, nil)
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(suite.activePlan(), nil)
	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(nil, pgx.ErrNoRows)
	suite.subRepo.On("Create", suite.context, mock.Anything).Return(fmt.Errorf("connection reset"))

	err := suite.svc.ApproveOrder(suite.context, suite.orderID)
	assert.Error(suite.T(), err)
	suite.orderRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus")
}

func (suite *SubscriptionServiceTestSuite) TestApproveOrder_TerminalStateRejected() {
	order := &models.SubscriptionOrder{
		ID:            suite.orderID,
		PartnerID:     suite.partnerID,
		PlanID:        suite.planID,
		PaymentStatus: models.OrderStatusRejected,
	}

	suite.orderRepo.On("GetByID", suite.context, suite.orderID).Return(order, nil)

	err := suite.svc.ApproveOrder(suite.context, suite.orderID)
	assert.Error(suite.T(), err)
	suite.orderRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus")
}

func (suite *SubscriptionServiceTestSuite) TestRejectOrder_PendingOnly() {
	order := &models.SubscriptionOrder{
		ID:            suite.orderID,
		PaymentStatus: models.OrderStatusApproved,
	}

	suite.orderRepo.On("GetByID", suite.context, suite.orderID).Return(order, nil)

	err := suite.svc.RejectOrder(suite.context, suite.orderID)
	assert.Error(suite.T(), err)
	suite.orderRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus")
}

func (suite *SubscriptionServiceTestSuite) TestCheckBranchQuota_UnderLimit() {
	sub := &models.PartnerSubscription{
		ID:        uuid.New(),
		PartnerID: suite.partnerID,
		PlanID:    suite.planID,
		Status:    models.SubscriptionStatusActive,
		EndDate:   time.Now().Add(24 * time.Hour),
	}

	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(sub, nil)
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(suite.activePlan(), nil)
	suite.branchRepo.On("CountByPartner", suite.context, suite.partnerID).Return(2, nil)

	err := suite.svc.CheckBranchQuota(suite.context, suite.partnerID)
	assert.NoError(suite.T(), err)
}

func (suite *SubscriptionServiceTestSuite) TestCheckBranchQuota_AtLimit() {
	sub := &models.PartnerSubscription{
		ID:        uuid.New(),
		PartnerID: suite.partnerID,
		PlanID:    suite.planID,
		Status:    models.SubscriptionStatusActive,
		EndDate:   time.Now().Add(24 * time.Hour),
	}

	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(sub, nil)
	suite.planRepo.On("GetByID", suite.context, suite.planID).Return(suite.activePlan(), nil)
	suite.branchRepo.On("CountByPartner", suite.context, suite.partnerID).Return(3, nil)

	err := suite.svc.CheckBranchQuota(suite.context, suite.partnerID)
	assert.Error(suite.T(), err)
}

func (suite *SubscriptionServiceTestSuite) TestCheckDeviceQuota_NoActiveSubscription() {
	suite.subRepo.On("GetActiveByPartner", suite.context, suite.partnerID).Return(nil, pgx.ErrNoRows)

	err := suite.svc.CheckDeviceQuota(suite.context, suite.partnerID)
	assert.Error(suite.T(), err)
	suite.licRepo.AssertNotCalled(suite.T(), "CountBoundByPartner")
}

func (suite *SubscriptionServiceTestSuite) TestExpireOverdue() {
	suite.subRepo.On("MarkExpired", suite.context).Return(int64(2), nil)

	n, err := suite.svc.ExpireOverdue(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(2), n)
}
