package background

import (
	"context"
	"log"
	"sync"
	"time"

	"kasirhub/internal/caching"
	"kasirhub/internal/repositories"
	"kasirhub/internal/services"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// JobScheduler runs the recurring maintenance work: flipping lapsed
// subscriptions and keeping the license cache warm for active partners.
type JobScheduler struct {
	scheduler   gocron.Scheduler
	subSvc      services.SubscriptionService
	licenseSvc  services.LicenseService
	reportSvc   services.ReportService
	cacheSvc    caching.CacheService
	partnerRepo repositories.PartnerRepository
	jobs        map[string]gocron.Job
	mu          sync.RWMutex
}

func NewJobScheduler(
	subSvc services.SubscriptionService,
	licenseSvc services.LicenseService,
	reportSvc services.ReportService,
	cacheSvc caching.CacheService,
	partnerRepo repositories.PartnerRepository,
) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:   scheduler,
		subSvc:      subSvc,
		licenseSvc:  licenseSvc,
		reportSvc:   reportSvc,
		cacheSvc:    cacheSvc,
		partnerRepo: partnerRepo,
		jobs:        make(map[string]gocron.Job),
	}

	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	expiryJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.expireSubscriptions, context.Background()),
		gocron.WithName("subscription-expiry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create subscription expiry job: %v", err)
	} else {
		js.jobs["subscription-expiry"] = expiryJob
	}

	warmupJob, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.refreshLicenseCaches, context.Background()),
		gocron.WithName("license-cache-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create license cache job: %v", err)
	} else {
		js.jobs["license-cache-refresh"] = warmupJob
	}

	reportJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.warmSalesReports, context.Background()),
		gocron.WithName("sales-report-warmup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create report warmup job: %v", err)
	} else {
		js.jobs["sales-report-warmup"] = reportJob
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// expireSubscriptions flips subscriptions whose end date has passed.
func (js *JobScheduler) expireSubscriptions(ctx context.Context) error {
	if _, err := js.subSvc.ExpireOverdue(ctx); err != nil {
		log.Printf("Subscription expiry sweep failed: %v", err)
		return err
	}
	return nil
}

// refreshLicenseCaches rebuilds the cached license list for every active
// partner so dashboards stay fast after device churn.
func (js *JobScheduler) refreshLicenseCaches(ctx context.Context) error {
	partners, err := js.partnerRepo.List(ctx, 1000, 0)
	if err != nil {
		log.Printf("Failed to list partners for license cache refresh: %v", err)
		return err
	}

	semaphore := make(chan struct{}, 5)
	var wg sync.WaitGroup

	for _, partner := range partners {
		if partner.Status != "active" {
			continue
		}

		wg.Add(1)
		go func(partnerID uuid.UUID) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := js.cacheSvc.InvalidatePartnerLicenses(ctx, partnerID); err != nil {
				log.Printf("Failed to invalidate license cache for partner %s: %v", partnerID, err)
			}
			if _, err := js.licenseSvc.List(ctx, partnerID, 100, 0); err != nil {
				log.Printf("Failed to warm license cache for partner %s: %v", partnerID, err)
			}
		}(partner.ID)
	}

	wg.Wait()
	return nil
}

// warmSalesReports pre-computes the last-30-days report for every active
// partner so the dashboard's default view hits the cache.
func (js *JobScheduler) warmSalesReports(ctx context.Context) error {
	partners, err := js.partnerRepo.List(ctx, 1000, 0)
	if err != nil {
		log.Printf("Failed to list partners for report warmup: %v", err)
		return err
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)

	for _, partner := range partners {
		if partner.Status != "active" {
			continue
		}
		if _, err := js.reportSvc.SalesReport(ctx, partner.ID, nil, from, now); err != nil {
			log.Printf("Failed to warm sales report for partner %s: %v", partner.ID, err)
		}
	}
	return nil
}

// GetJobStatus reports the registered job names, used by the health
// endpoint during debugging.
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.jobs),
		"jobs":       names,
	}
}
