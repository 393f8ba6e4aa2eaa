package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"kasirhub/internal/caching"
	"kasirhub/internal/models"
	"kasirhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

const licenseCacheTTL = 5 * time.Minute

// LicenseService issues activation codes, binds devices and keeps the
// derived status populated on every record it returns.
type LicenseService interface {
	Create(ctx context.Context, partnerID uuid.UUID) (*models.License, error)
	List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.License, error)
	GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.License, error)
	AssignBranch(ctx context.Context, partnerID, id uuid.UUID, branchID *uuid.UUID) error
	Activate(ctx context.Context, activationCode, deviceID, deviceName string) (*models.License, error)
	ResetDevice(ctx context.Context, partnerID, id uuid.UUID) error
	Delete(ctx context.Context, partnerID, id uuid.UUID) error
}

type licenseService struct {
	licRepo  repositories.LicenseRepository
	subSvc   SubscriptionService
	cacheSvc caching.CacheService
}

func NewLicenseService(licRepo repositories.LicenseRepository, subSvc SubscriptionService, cacheSvc caching.CacheService) LicenseService {
	return &licenseService{
		licRepo:  licRepo,
		subSvc:   subSvc,
		cacheSvc: cacheSvc,
	}
}

func (s *licenseService) Create(ctx context.Context, partnerID uuid.UUID) (*models.License, error) {
	license := &models.License{
		ID:             uuid.New(),
		PartnerID:      partnerID,
		ActivationCode: generateActivationCode(),
	}
	if err := s.licRepo.Create(ctx, license); err != nil {
		return nil, err
	}
	s.invalidate(ctx, partnerID)

	license.Status = license.DeriveStatus()
	return license, nil
}

func (s *licenseService) List(ctx context.Context, partnerID uuid.UUID, limit, offset int) ([]*models.License, error) {
	// Cache only first-page listings. A hit is served only when the
	// cached list can cover the requested page size, sliced down to it.
	cacheable := offset == 0
	if cacheable {
		if cached, err := s.cacheSvc.GetPartnerLicenses(ctx, partnerID); err == nil && len(cached) >= limit {
			return cached[:limit], nil
		}
	}

	licenses, err := s.licRepo.List(ctx, partnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, l := range licenses {
		l.Status = l.DeriveStatus()
	}

	if cacheable {
		if err := s.cacheSvc.SetPartnerLicenses(ctx, partnerID, licenses, licenseCacheTTL); err != nil {
			log.Printf("Failed to cache licenses for partner %s: %v", partnerID, err)
		}
	}
	return licenses, nil
}

func (s *licenseService) GetByID(ctx context.Context, partnerID, id uuid.UUID) (*models.License, error) {
	license, err := s.licRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		return nil, err
	}
	license.Status = license.DeriveStatus()
	return license, nil
}

func (s *licenseService) AssignBranch(ctx context.Context, partnerID, id uuid.UUID, branchID *uuid.UUID) error {
	license, err := s.licRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		return fmt.Errorf("license not found")
	}
	if license.DeviceID != "" {
		return fmt.Errorf("license is bound to a device, reset it first")
	}

	if err := s.licRepo.AssignBranch(ctx, partnerID, id, branchID); err != nil {
		return err
	}
	s.invalidate(ctx, partnerID)
	return nil
}

// Activate binds a device to a license via its activation code. The
// partner's plan device limit is enforced at bind time.
func (s *licenseService) Activate(ctx context.Context, activationCode, deviceID, deviceName string) (*models.License, error) {
	license, err := s.licRepo.GetByActivationCode(ctx, activationCode)
	if err != nil {
		return nil, fmt.Errorf("activation code not found")
	}
	if license.DeviceID != "" {
		return nil, fmt.Errorf("license is already active on another device")
	}

	if err := s.subSvc.CheckDeviceQuota(ctx, license.PartnerID); err != nil {
		return nil, err
	}

	if err := s.licRepo.BindDevice(ctx, license.ID, deviceID, deviceName); err != nil {
		return nil, err
	}
	s.invalidate(ctx, license.PartnerID)

	license.DeviceID = deviceID
	license.DeviceName = deviceName
	license.Status = license.DeriveStatus()
	return license, nil
}

func (s *licenseService) ResetDevice(ctx context.Context, partnerID, id uuid.UUID) error {
	if err := s.licRepo.ResetDevice(ctx, partnerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, partnerID)
	return nil
}

func (s *licenseService) Delete(ctx context.Context, partnerID, id uuid.UUID) error {
	license, err := s.licRepo.GetByID(ctx, partnerID, id)
	if err != nil {
		return fmt.Errorf("license not found")
	}
	if license.DeviceID != "" {
		return fmt.Errorf("license is active on a device, reset it first")
	}

	if err := s.licRepo.Delete(ctx, partnerID, id); err != nil {
		return err
	}
	s.invalidate(ctx, partnerID)
	return nil
}

func (s *licenseService) invalidate(ctx context.Context, partnerID uuid.UUID) {
	if err := s.cacheSvc.InvalidatePartnerLicenses(ctx, partnerID); err != nil {
		log.Printf("Failed to invalidate license cache for partner %s: %v", partnerID, err)
	}
}

// Activation codes look like KSR-XXXX-XXXX using unambiguous uppercase
// characters.
func generateActivationCode() string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	return fmt.Sprintf("KSR-%s-%s", random.String(4, alphabet), random.String(4, alphabet))
}
