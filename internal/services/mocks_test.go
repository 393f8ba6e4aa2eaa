package services

import (
	"context"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListVisibleToBranch(ctx context.Context, partnerID, branchID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, partnerID, branchID, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockLicenseRepository struct {
	mock.Mock
}

func (m *MockLicenseRepository) Create(ctx context.Context, license *models.License) error {
	args := m.Called(ctx, license)
	return args.Error(0)
}

func (m *MockLicenseRepository) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.License, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseRepository) GetByActivationCode(ctx context.Context, code string) (*models.License, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func (m *MockLicenseRepository) AssignBranch(ctx context.Context, partnerID, id uuid.UUID, branchID *uuid.UUID) error {
	args := m.Called(ctx, partnerID, id, branchID)
	return args.Error(0)
}

func (m *MockLicenseRepository) BindDevice(ctx context.Context, id uuid.UUID, deviceID, deviceName string) error {
	args := m.Called(ctx, id, deviceID, deviceName)
	return args.Error(0)
}

func (m *MockLicenseRepository) ResetDevice(ctx context.Context, partnerID, id uuid.UUID) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockLicenseRepository) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockLicenseRepository) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.License, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	return args.Get(0).([]*models.License), args.Error(1)
}

func (m *MockLicenseRepository) CountByPartner(ctx context.Context, partnerID uuid.UUID) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

func (m *MockLicenseRepository) CountBoundByPartner(ctx context.Context, partnerID uuid.UUID) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

type MockSubscriptionPlanRepository struct {
	mock.Mock
}

func (m *MockSubscriptionPlanRepository) Create(ctx context.Context, plan *models.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockSubscriptionPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionPlan), args.Error(1)
}

func (m *MockSubscriptionPlanRepository) Update(ctx context.Context, plan *models.SubscriptionPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockSubscriptionPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubscriptionPlanRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*models.SubscriptionPlan, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	return args.Get(0).([]*models.SubscriptionPlan), args.Error(1)
}

type MockPartnerSubscriptionRepository struct {
	mock.Mock
}

func (m *MockPartnerSubscriptionRepository) Create(ctx context.Context, sub *models.PartnerSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockPartnerSubscriptionRepository) GetActiveByPartner(ctx context.Context, partnerID uuid.UUID) (*models.PartnerSubscription, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PartnerSubscription), args.Error(1)
}

func (m *MockPartnerSubscriptionRepository) ExtendEndDate(ctx context.Context, id uuid.UUID, days int) error {
	args := m.Called(ctx, id, days)
	return args.Error(0)
}

func (m *MockPartnerSubscriptionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPartnerSubscriptionRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.PartnerSubscription, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	return args.Get(0).([]*models.PartnerSubscription), args.Error(1)
}

func (m *MockPartnerSubscriptionRepository) MarkExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubscriptionOrderRepository struct {
	mock.Mock
}

func (m *MockSubscriptionOrderRepository) Create(ctx context.Context, order *models.SubscriptionOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSubscriptionOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SubscriptionOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubscriptionOrder), args.Error(1)
}

func (m *MockSubscriptionOrderRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSubscriptionOrderRepository) AttachProofImage(ctx context.Context, partnerID, id uuid.UUID, imageKey string) error {
	args := m.Called(ctx, partnerID, id, imageKey)
	return args.Error(0)
}

func (m *MockSubscriptionOrderRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.SubscriptionOrder, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	return args.Get(0).([]*models.SubscriptionOrder), args.Error(1)
}

func (m *MockSubscriptionOrderRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*models.SubscriptionOrder, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]*models.SubscriptionOrder), args.Error(1)
}

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.Branch, error) {
	args := m.Called(ctx, partnerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Branch), args.Error(1)
}

func (m *MockBranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	args := m.Called(ctx, partnerID, id)
	return args.Error(0)
}

func (m *MockBranchRepository) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.Branch, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	return args.Get(0).([]*models.Branch), args.Error(1)
}

func (m *MockBranchRepository) CountByPartner(ctx context.Context, partnerID uuid.UUID) (int, error) {
	args := m.Called(ctx, partnerID)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListByPartner(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, partnerID, limit, offset)
	return args.Get(0).([]*models.User), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetSalesReport(ctx context.Context, key string) (*models.SalesReport, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SalesReport), args.Error(1)
}

func (m *MockCacheService) SetSalesReport(ctx context.Context, key string, report *models.SalesReport, ttl time.Duration) error {
	args := m.Called(ctx, key, report, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetPartnerLicenses(ctx context.Context, partnerID uuid.UUID) ([]*models.License, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.License), args.Error(1)
}

func (m *MockCacheService) SetPartnerLicenses(ctx context.Context, partnerID uuid.UUID, licenses []*models.License, ttl time.Duration) error {
	args := m.Called(ctx, partnerID, licenses, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidatePartnerLicenses(ctx context.Context, partnerID uuid.UUID) error {
	args := m.Called(ctx, partnerID)
	return args.Error(0)
}

func (m *MockCacheService) InvalidatePartnerCache(ctx context.Context, partnerID uuid.UUID) error {
	args := m.Called(ctx, partnerID)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
