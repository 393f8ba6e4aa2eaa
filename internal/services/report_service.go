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
)

const reportCacheTTL = 10 * time.Minute

// ReportService aggregates sales per day, cached per partner, branch and
// date range.
type ReportService interface {
	SalesReport(ctx context.Context, partnerID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (*models.SalesReport, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	cacheSvc   caching.CacheService
}

func NewReportService(reportRepo repositories.ReportRepository, cacheSvc caching.CacheService) ReportService {
	return &reportService{reportRepo: reportRepo, cacheSvc: cacheSvc}
}

func (s *reportService) SalesReport(ctx context.Context, partnerID uuid.UUID, branchID *uuid.UUID, from, to time.Time) (*models.SalesReport, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("end date is before start date")
	}

	cacheKey := reportCacheKey(partnerID, branchID, from, to)
	if cached, err := s.cacheSvc.GetSalesReport(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	rows, err := s.reportRepo.SalesByDay(ctx, partnerID, branchID, from, to)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, row := range rows {
		total += row.Revenue
	}

	report := &models.SalesReport{
		StartDate: from,
		EndDate:   to,
		Rows:      rows,
		Total:     total,
	}

	if err := s.cacheSvc.SetSalesReport(ctx, cacheKey, report, reportCacheTTL); err != nil {
		log.Printf("Failed to cache sales report for partner %s: %v", partnerID, err)
	}
	return report, nil
}

func reportCacheKey(partnerID uuid.UUID, branchID *uuid.UUID, from, to time.Time) string {
	branch := "all"
	if branchID != nil {
		branch = branchID.String()
	}
	return fmt.Sprintf("%s:%s:%s:%s", partnerID, branch, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
