package service

import (
	"sort"
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/shopspring/decimal"
)

// StatsService handles dashboard aggregate queries
type StatsService struct {
	statsRepo   domain.StatsRepository
	invoiceRepo domain.InvoiceRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo domain.StatsRepository, invoiceRepo domain.InvoiceRepository) *StatsService {
	return &StatsService{
		statsRepo:   statsRepo,
		invoiceRepo: invoiceRepo,
	}
}

// Overview returns the year-to-date headline statistics
func (s *StatsService) Overview() (*domain.OverviewStats, error) {
	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	totalSpend, err := s.statsRepo.TotalSpendSince(yearStart, domain.SpendStatuses())
	if err != nil {
		return nil, err
	}

	totalInvoices, err := s.statsRepo.CountInvoicesSince(yearStart)
	if err != nil {
		return nil, err
	}

	documentsUploaded, err := s.statsRepo.CountDocuments()
	if err != nil {
		return nil, err
	}

	avgValue, err := s.statsRepo.AverageInvoiceValueSince(yearStart)
	if err != nil {
		return nil, err
	}

	return &domain.OverviewStats{
		TotalSpend:          totalSpend,
		TotalInvoices:       totalInvoices,
		DocumentsUploaded:   documentsUploaded,
		AverageInvoiceValue: avgValue,
		Year:                now.Year(),
	}, nil
}

// CategorySpend returns total invoiced spend per category within the
// optional issue-date range, sorted by descending amount. Only invoices
// with an assigned category are counted.
func (s *StatsService) CategorySpend(start, end *time.Time) ([]domain.CategoryOutflowBucket, error) {
	rows, err := s.invoiceRepo.ListCategorySpend(start, end)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, row := range rows {
		byCategory[row.Category] = byCategory[row.Category].Add(row.TotalAmount)
	}

	buckets := make([]domain.CategoryOutflowBucket, 0, len(byCategory))
	for cat, amount := range byCategory {
		buckets = append(buckets, domain.CategoryOutflowBucket{Category: cat, Amount: amount})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if !buckets[i].Amount.Equal(buckets[j].Amount) {
			return buckets[i].Amount.GreaterThan(buckets[j].Amount)
		}
		return buckets[i].Category < buckets[j].Category
	})
	return buckets, nil
}
