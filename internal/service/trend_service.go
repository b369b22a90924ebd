package service

import (
	"time"

	"github.com/flowbit/flowbit/analytics-api/internal/domain"
	"github.com/flowbit/flowbit/analytics-api/internal/util"
	"github.com/shopspring/decimal"
)

// TrendService computes invoice volume and value trends over trailing months
type TrendService struct {
	invoiceRepo domain.InvoiceRepository
}

// NewTrendService creates a new TrendService
func NewTrendService(invoiceRepo domain.InvoiceRepository) *TrendService {
	return &TrendService{invoiceRepo: invoiceRepo}
}

// InvoiceTrends returns per-month invoice counts and totals for the
// trailing window ending at the current month.
func (s *TrendService) InvoiceTrends(months int) ([]domain.TrendPoint, error) {
	months = clampHorizon(months, domain.DefaultTrendMonths)

	start := util.MonthStart(time.Now()).AddDate(0, -(months - 1), 0)
	rows, err := s.invoiceRepo.ListIssuedSince(start)
	if err != nil {
		return nil, err
	}

	return ComputeInvoiceTrends(rows, months, start), nil
}

// ComputeInvoiceTrends folds invoice digests into a zero-filled,
// month-sequential series of exactly months entries starting at start's
// month. Pure; start is supplied by the caller.
func ComputeInvoiceTrends(rows []*domain.InvoiceDigest, months int, start time.Time) []domain.TrendPoint {
	type acc struct {
		count int64
		total decimal.Decimal
	}

	byMonth := make(map[string]acc, months)
	for _, row := range rows {
		if row == nil {
			continue
		}
		key := util.MonthKey(row.IssueDate)
		entry := byMonth[key]
		entry.count++
		entry.total = entry.total.Add(row.TotalAmount)
		byMonth[key] = entry
	}

	points := make([]domain.TrendPoint, 0, months)
	monthStart := util.MonthStart(start)
	for i := 0; i < months; i++ {
		key := util.MonthKey(util.AddMonths(monthStart, i))
		entry := byMonth[key]
		total := entry.total
		if entry.count == 0 {
			total = decimal.Zero
		}
		points = append(points, domain.TrendPoint{
			Month:        key,
			InvoiceCount: entry.count,
			TotalValue:   total,
		})
	}
	return points
}
