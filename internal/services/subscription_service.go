package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
)

// SubscriptionService manages plans, purchase orders and the partner's
// active subscription. Plan limits (branches, devices) are enforced here.
type SubscriptionService interface {
	CreateOrder(ctx context.Context, partnerID, planID uuid.UUID) (*models.SubscriptionOrder, error)
	ApproveOrder(ctx context.Context, orderID uuid.UUID) error
	RejectOrder(ctx context.Context, orderID uuid.UUID) error

	GetActiveSubscription(ctx context.Context, partnerID uuid.UUID) (*models.PartnerSubscription, error)
	CheckBranchQuota(ctx context.Context, partnerID uuid.UUID) error
	CheckDeviceQuota(ctx context.Context, partnerID uuid.UUID) error

	ExpireOverdue(ctx context.Context) (int64, error)
}

type subscriptionService struct {
	planRepo   repositories.SubscriptionPlanRepository
	subRepo    repositories.PartnerSubscriptionRepository
	orderRepo  repositories.SubscriptionOrderRepository
	branchRepo repositories.BranchRepository
	licRepo    repositories.LicenseRepository
}

func NewSubscriptionService(
	planRepo repositories.SubscriptionPlanRepository,
	subRepo repositories.PartnerSubscriptionRepository,
	orderRepo repositories.SubscriptionOrderRepository,
	branchRepo repositories.BranchRepository,
	licRepo repositories.LicenseRepository,
) SubscriptionService {
	return &subscriptionService{
		planRepo:   planRepo,
		subRepo:    subRepo,
		orderRepo:  orderRepo,
		branchRepo: branchRepo,
		licRepo:    licRepo,
	}
}

func (s *subscriptionService) CreateOrder(ctx context.Context, partnerID, planID uuid.UUID) (*models.SubscriptionOrder, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("plan not found")
	}
	if !plan.IsActive {
		return nil, fmt.Errorf("plan is no longer offered")
	}

	order := &models.SubscriptionOrder{
		ID:            uuid.New(),
		PartnerID:     partnerID,
		PlanID:        planID,
		Amount:        plan.Price,
		PaymentStatus: models.OrderStatusPendingPayment,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ApproveOrder confirms payment and starts or extends the partner's
// subscription by the plan's duration. Only pending orders transition.
func (s *subscriptionService) ApproveOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("order not found")
	}
	if order.PaymentStatus != models.OrderStatusPendingPayment {
		return fmt.Errorf("order is already %s", order.PaymentStatus)
	}

	plan, err := s.planRepo.GetByID(ctx, order.PlanID)
	if err != nil {
		return fmt.Errorf("plan not found")
	}

	// The subscription write happens first so a failure never strands an
	// approved order without its subscription.
	active, err := s.subRepo.GetActiveByPartner(ctx, order.PartnerID)
	if err == nil && active != nil {
		if err := s.subRepo.ExtendEndDate(ctx, active.ID, plan.DurationDays); err != nil {
			return err
		}
	} else {
		now := time.Now()
		sub := &models.PartnerSubscription{
			ID:        uuid.New(),
			PartnerID: order.PartnerID,
			PlanID:    order.PlanID,
			Status:    models.SubscriptionStatusActive,
			StartDate: now,
			EndDate:   now.AddDate(0, 0, plan.DurationDays),
		}
		if err := s.subRepo.Create(ctx, sub); err != nil {
			return err
		}
	}

	return s.orderRepo.UpdatePaymentStatus(ctx, orderID, models.OrderStatusApproved)
}

func (s *subscriptionService) RejectOrder(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("order not found")
	}
	if order.PaymentStatus != models.OrderStatusPendingPayment {
		return fmt.Errorf("order is already %s", order.PaymentStatus)
	}
	return s.orderRepo.UpdatePaymentStatus(ctx, orderID, models.OrderStatusRejected)
}

func (s *subscriptionService) GetActiveSubscription(ctx context.Context, partnerID uuid.UUID) (*models.PartnerSubscription, error) {
	return s.subRepo.GetActiveByPartner(ctx, partnerID)
}

func (s *subscriptionService) CheckBranchQuota(ctx context.Context, partnerID uuid.UUID) error {
	plan, err := s.activePlan(ctx, partnerID)
	if err != nil {
		return err
	}

	count, err := s.branchRepo.CountByPartner(ctx, partnerID)
	if err != nil {
		return err
	}
	if count >= plan.MaxBranches {
		return fmt.Errorf("branch limit reached (%d of %d)", count, plan.MaxBranches)
	}
	return nil
}

func (s *subscriptionService) CheckDeviceQuota(ctx context.Context, partnerID uuid.UUID) error {
	plan, err := s.activePlan(ctx, partnerID)
	if err != nil {
		return err
	}

	count, err := s.licRepo.CountBoundByPartner(ctx, partnerID)
	if err != nil {
		return err
	}
	if count >= plan.MaxDevices {
		return fmt.Errorf("device limit reached (%d of %d)", count, plan.MaxDevices)
	}
	return nil
}

func (s *subscriptionService) activePlan(ctx context.Context, partnerID uuid.UUID) (*models.SubscriptionPlan, error) {
	sub, err := s.subRepo.GetActiveByPartner(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("no active subscription")
	}
	if time.Now().After(sub.EndDate) {
		return nil, fmt.Errorf("subscription expired")
	}
	return s.planRepo.GetByID(ctx, sub.PlanID)
}

// ExpireOverdue is invoked by the scheduler to flip lapsed subscriptions.
func (s *subscriptionService) ExpireOverdue(ctx context.Context) (int64, error) {
	n, err := s.subRepo.MarkExpired(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("Marked %d subscriptions as expired", n)
	}
	return n, nil
}
